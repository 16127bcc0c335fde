package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/rigconf/internal/filesys"
	"github.com/lc/rigconf/internal/settings"
)

type SettingsTestSuite struct {
	suite.Suite
	path  string
	store *settings.Store
}

func (s *SettingsTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "settings.env")
	s.store = settings.NewStore(filesys.OS(), s.path)
}

func (s *SettingsTestSuite) TestDefaultUnset() {
	s.Equal("", s.store.Default())
}

func (s *SettingsTestSuite) TestSetAndGet() {
	s.Require().NoError(s.store.SetDefault("ferrari"))
	s.Equal("ferrari", s.store.Default())
}

func (s *SettingsTestSuite) TestFileFormat() {
	s.Require().NoError(s.store.SetDefault("audi"))

	b, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("DEFAULT_PROJECT=audi\n", string(b))
}

func (s *SettingsTestSuite) TestOverwrite() {
	s.Require().NoError(s.store.SetDefault("ferrari"))
	s.Require().NoError(s.store.SetDefault("audi"))

	s.Equal("audi", s.store.Default())

	// Prior content is fully replaced, not appended to.
	b, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("DEFAULT_PROJECT=audi\n", string(b))
}

func (s *SettingsTestSuite) TestCreatesParentDirectory() {
	s.path = filepath.Join(s.T().TempDir(), "deep", "nested", "settings.env")
	s.store = settings.NewStore(filesys.OS(), s.path)

	s.Require().NoError(s.store.SetDefault("ferrari"))
	s.Equal("ferrari", s.store.Default())
}

func (s *SettingsTestSuite) TestIgnoresUnrelatedLines() {
	content := "# managed by rigconf\nOTHER=stuff\nDEFAULT_PROJECT=tata_gen3+\n"
	s.Require().NoError(os.WriteFile(s.path, []byte(content), 0o644))

	s.Equal("tata_gen3+", s.store.Default())
}

func (s *SettingsTestSuite) TestTrimsValue() {
	s.Require().NoError(os.WriteFile(s.path, []byte("DEFAULT_PROJECT=ferrari \n"), 0o644))
	s.Equal("ferrari", s.store.Default())
}

func (s *SettingsTestSuite) TestNoTempFileLeftBehind() {
	s.Require().NoError(s.store.SetDefault("ferrari"))

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1, "the atomic write must leave only the settings file")
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}
