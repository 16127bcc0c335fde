package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/rigconf/internal/filesys"
	"github.com/lc/rigconf/internal/mocks"
	"github.com/lc/rigconf/internal/project"
)

type CatalogTestSuite struct {
	suite.Suite
	dir     string
	catalog *project.Catalog
}

func (s *CatalogTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.catalog = project.NewCatalog(filesys.OS(), s.dir)
}

func (s *CatalogTestSuite) write(name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644))
}

func (s *CatalogTestSuite) TestProjectsSortedAndFiltered() {
	s.write("ferrari.env", "#class Main\nK=1\n")
	s.write("audi.env", "#class Main\nK=2\n")
	s.write("readme.txt", "not a project")
	s.write(".hidden.env", "#class Main\nK=3\n")
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, "nested.env"), 0o755))

	names, err := s.catalog.Projects()
	s.Require().NoError(err)
	s.Equal([]string{"audi", "ferrari"}, names)
}

func (s *CatalogTestSuite) TestProjectsMissingDir() {
	s.catalog = project.NewCatalog(filesys.OS(), filepath.Join(s.dir, "nope"))

	names, err := s.catalog.Projects()
	s.NoError(err)
	s.Empty(names)
}

func (s *CatalogTestSuite) TestResolve() {
	s.write("ferrari.env", "#class Main\nK=1\n")

	path, err := s.catalog.Resolve("ferrari")
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.dir, "ferrari.env"), path)
}

func (s *CatalogTestSuite) TestResolveNotFound() {
	_, err := s.catalog.Resolve("does_not_exist")

	var nf *project.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("does_not_exist", nf.Name)
	s.Contains(err.Error(), "does_not_exist")

	// Distinct in kind from a validation rejection.
	var verr *project.InvalidNameError
	s.False(errors.As(err, &verr))
}

func (s *CatalogTestSuite) TestResolveInvalidName() {
	_, err := s.catalog.Resolve("../../etc/passwd")

	var verr *project.InvalidNameError
	s.Require().ErrorAs(err, &verr)
	s.Equal("../../etc/passwd", verr.Name)
}

func (s *CatalogTestSuite) TestInvalidNameNeverTouchesDisk() {
	// A catalog over a strict mock: any file access would fail the test
	// because no expectations are registered.
	fsMock := &mocks.MockOsFS{}
	cat := project.NewCatalog(fsMock, "/projects")

	for _, name := range []string{"../../etc/passwd", ".hidden", "a..b", "a/b", ""} {
		_, err := cat.Resolve(name)

		var verr *project.InvalidNameError
		s.Require().ErrorAs(err, &verr)
	}
	s.Empty(fsMock.Calls, "validation must reject before any file access")
}

func (s *CatalogTestSuite) TestLoad() {
	s.write("ferrari.env", "#class Project Configuration\nEXECUTE_GROUP=FERRARI_PCTS\n")

	p, err := s.catalog.Load("ferrari")
	s.Require().NoError(err)
	s.Equal("ferrari", p.Name())

	v, err := p.Lookup("EXECUTE_GROUP")
	s.Require().NoError(err)
	s.Equal("FERRARI_PCTS", v.String())
}

func (s *CatalogTestSuite) TestLoadParseFailure() {
	s.write("broken.env", "ORPHAN=1\n")

	_, err := s.catalog.Load("broken")

	var perr *project.ParseError
	s.Require().ErrorAs(err, &perr)
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
