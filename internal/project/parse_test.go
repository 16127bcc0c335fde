package project_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"

	"github.com/lc/rigconf/internal/project"
	"github.com/lc/rigconf/internal/value"
)

type ParseTestSuite struct {
	suite.Suite
}

func (s *ParseTestSuite) parse(text string) (*project.Project, error) {
	return project.Parse("ferrari", strings.NewReader(text))
}

func (s *ParseTestSuite) TestFullFile() {
	p, err := s.parse(`
# rig configuration for the ferrari test bench
#class Project Configuration
EXECUTE_GROUP=FERRARI_PCTS
RETRY_COUNT=3
PARALLEL=yes

#class Device Configuration
ADB_DEVICE_1_ID=4B091VDAQ000F3
BOOT_TIMEOUT_S=2.5
LABEL=
`)
	s.Require().NoError(err)
	s.Equal("ferrari", p.Name())
	s.NotEmpty(p.LoadID())

	// Section order mirrors file order.
	sections := p.Sections()
	s.Require().Len(sections, 2)
	s.Equal("ProjectConfiguration", sections[0].Name())
	s.Equal("DeviceConfiguration", sections[1].Name())

	// Key order mirrors file order.
	s.Equal([]string{"EXECUTE_GROUP", "RETRY_COUNT", "PARALLEL"}, sections[0].Keys())

	// Typed values.
	v, ok := sections[0].Get("EXECUTE_GROUP")
	s.True(ok)
	s.Equal(value.KindString, v.Kind())
	s.Equal("FERRARI_PCTS", v.String())

	v, _ = sections[0].Get("RETRY_COUNT")
	s.Equal(value.KindInt, v.Kind())
	s.Equal(int64(3), v.Int())

	v, _ = sections[0].Get("PARALLEL")
	s.Equal(value.KindBool, v.Kind())
	s.True(v.Bool())

	v, _ = sections[1].Get("BOOT_TIMEOUT_S")
	s.Equal(value.KindFloat, v.Kind())
	s.InDelta(2.5, v.Float(), 1e-12)

	// Alphanumeric token with no numeric grammar match stays a string.
	v, _ = sections[1].Get("ADB_DEVICE_1_ID")
	s.Equal(value.KindString, v.Kind())
	s.Equal("4B091VDAQ000F3", v.String())

	// Empty value is the empty string, never an error.
	v, ok = sections[1].Get("LABEL")
	s.True(ok)
	s.Equal(value.KindString, v.Kind())
	s.Equal("", v.String())
}

func (s *ParseTestSuite) TestTitleNormalization() {
	testCases := []struct {
		title string
		want  string
	}{
		{"Project Configuration", "ProjectConfiguration"},
		{"Device Configuration", "DeviceConfiguration"},
		{"Gen 3 Devices", "Gen3Devices"},
		{"CAN-Bus Settings", "CAN-BusSettings"},
		{"  Padded   Title  ", "PaddedTitle"},
		{"Single", "Single"},
	}

	for _, tc := range testCases {
		s.Run(tc.title, func() {
			p, err := s.parse("#class " + tc.title + "\nK=1\n")
			s.Require().NoError(err)
			sec, err := p.Section(tc.want)
			s.Require().NoError(err)
			s.Equal(tc.want, sec.Name())
		})
	}
}

func (s *ParseTestSuite) TestCommentsAndBlanksIgnored() {
	p, err := s.parse(`
# a comment
#another comment
#classless comment, not a marker
#class Main
# inner comment
KEY=1
`)
	s.Require().NoError(err)
	s.Require().Len(p.Sections(), 1)
	s.Equal("Main", p.Sections()[0].Name())
	s.Equal([]string{"KEY"}, p.Sections()[0].Keys())
}

func (s *ParseTestSuite) TestMarkerWithEmptyTitleIsComment() {
	_, err := s.parse("#class  \nKEY=1\n")
	// The bare marker opens nothing, so the assignment has no section.
	s.Error(err)
}

func (s *ParseTestSuite) TestAssignmentOutsideSectionFails() {
	_, err := s.parse("EXECUTE_GROUP=FERRARI_PCTS\n")
	s.Require().Error(err)

	var perr *project.ParseError
	s.Require().ErrorAs(err, &perr)
	s.Equal("ferrari", perr.Project)
	s.Contains(perr.Error(), "outside any section")
}

func (s *ParseTestSuite) TestMalformedLineFails() {
	_, err := s.parse("#class Main\nthis is not an assignment\n")
	s.Require().Error(err)

	var perr *project.ParseError
	s.Require().ErrorAs(err, &perr)
	s.Contains(perr.Error(), "not a comment, section marker or assignment")
}

func (s *ParseTestSuite) TestAllBadLinesReported() {
	_, err := s.parse("junk one\n#class Main\njunk two\n=no key\n")
	s.Require().Error(err)

	var perr *project.ParseError
	s.Require().ErrorAs(err, &perr)
	s.Len(multierr.Errors(perr.Unwrap()), 3)
}

func (s *ParseTestSuite) TestFirstEqualsSplits() {
	p, err := s.parse("#class Main\nCMD=run --flag=value\n")
	s.Require().NoError(err)

	v, err := p.Lookup("CMD")
	s.Require().NoError(err)
	s.Equal("run --flag=value", v.String())
}

func (s *ParseTestSuite) TestKeyAndValueTrimmed() {
	p, err := s.parse("#class Main\n  KEY  =  padded value  \n")
	s.Require().NoError(err)

	v, err := p.Lookup("KEY")
	s.Require().NoError(err)
	s.Equal("padded value", v.String())
}

func (s *ParseTestSuite) TestDuplicateKeyLastWins() {
	p, err := s.parse("#class Main\nKEY=first\nOTHER=1\nKEY=second\n")
	s.Require().NoError(err)

	v, err := p.Lookup("KEY")
	s.Require().NoError(err)
	s.Equal("second", v.String())

	// Position of the first assignment is kept.
	s.Equal([]string{"KEY", "OTHER"}, p.Sections()[0].Keys())
}

func (s *ParseTestSuite) TestDuplicateSectionTitleMerges() {
	p, err := s.parse(`#class Main
A=1
#class Other
B=2
#class Main
C=3
`)
	s.Require().NoError(err)
	s.Require().Len(p.Sections(), 2)

	main, err := p.Section("Main")
	s.Require().NoError(err)
	s.Equal([]string{"A", "C"}, main.Keys())
}

func (s *ParseTestSuite) TestLookupSectionOrder() {
	p, err := s.parse(`#class First
SHARED=from-first
#class Second
SHARED=from-second
ONLY_SECOND=x
`)
	s.Require().NoError(err)

	// First section declaring the key wins.
	v, err := p.Lookup("SHARED")
	s.Require().NoError(err)
	s.Equal("from-first", v.String())

	v, err = p.Lookup("ONLY_SECOND")
	s.Require().NoError(err)
	s.Equal("x", v.String())
}

func (s *ParseTestSuite) TestLookupMissingKey() {
	p, err := s.parse("#class Main\nKEY=1\n")
	s.Require().NoError(err)

	_, err = p.Lookup("NOPE")
	var kerr *project.KeyNotFoundError
	s.Require().ErrorAs(err, &kerr)
	s.Equal("NOPE", kerr.Key)
	s.Contains(err.Error(), "NOPE")
}

func (s *ParseTestSuite) TestSectionMissing() {
	p, err := s.parse("#class Main\nKEY=1\n")
	s.Require().NoError(err)

	_, err = p.Section("DeviceConfiguration")
	var serr *project.SectionNotFoundError
	s.Require().ErrorAs(err, &serr)
	s.Equal("DeviceConfiguration", serr.Section)
}

func (s *ParseTestSuite) TestLoadIDsAreUnique() {
	text := "#class Main\nKEY=1\n"
	p1, err := s.parse(text)
	s.Require().NoError(err)
	p2, err := s.parse(text)
	s.Require().NoError(err)

	s.NotEqual(p1.LoadID(), p2.LoadID())
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseTestSuite))
}
