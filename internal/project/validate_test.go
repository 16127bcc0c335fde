package project_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/rigconf/internal/project"
)

type ValidateTestSuite struct {
	suite.Suite
}

func (s *ValidateTestSuite) TestRejectedNames() {
	testCases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"traversal", "../../etc/passwd"},
		{"parent dir", "../secret"},
		{"space", "my project"},
		{"slash", "project/sub"},
		{"backslash", `project\sub`},
		{"leading dot", ".hidden"},
		{"consecutive dots", "a..b"},
		{"tab", "a\tb"},
		{"newline", "a\nb"},
		{"shell meta", "a;b"},
		{"colon", "a:b"},
		{"unicode", "prøject"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := project.ValidateName(tc.in)
			s.Require().Error(err)

			var verr *project.InvalidNameError
			s.Require().ErrorAs(err, &verr)
			s.Equal(tc.in, verr.Name)

			// The message names the offender and the allowed-character rule.
			s.Contains(err.Error(), tc.in)
			s.Contains(err.Error(), "alphanumeric")
		})
	}
}

func (s *ValidateTestSuite) TestAcceptedNames() {
	for _, name := range []string{
		"ferrari",
		"my-project",
		"project_v2",
		"Test123",
		"tata_gen3+",
		"v1.2",
		"a",
	} {
		s.Run(name, func() {
			s.NoError(project.ValidateName(name))
		})
	}
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateTestSuite))
}
