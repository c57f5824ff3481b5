//go:build unit || !integration

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/cmd/cli"
	"github.com/genie-oss/genie/pkg/version"
)

const seedDoc = `
applications:
  - {id: hadoop, name: hadoop, version: "2.7", user: admin}
  - {id: spark, name: spark, version: "3.4", user: admin}
commands:
  - id: hive
    name: hive
    version: "2.1"
    user: admin
    executable: [hive]
    applications: [hadoop]
clusters:
  - id: prod-1
    name: prod
    version: "1"
    user: admin
    tags: [prod, hadoop]
    commands: [hive]
`

type RootSuite struct {
	suite.Suite
	dataDir  string
	seedFile string
}

func TestRootSuite(t *testing.T) {
	suite.Run(t, new(RootSuite))
}

func (s *RootSuite) SetupTest() {
	s.T().Setenv("GENIE_ENVIRONMENT", "test")
	s.dataDir = s.T().TempDir()
	s.seedFile = filepath.Join(s.dataDir, "seed.yaml")
	s.Require().NoError(os.WriteFile(s.seedFile, []byte(seedDoc), 0o644))
}

func (s *RootSuite) execute(args ...string) (string, string, error) {
	root := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (s *RootSuite) nodeArgs(args ...string) []string {
	return append(args,
		"--data-dir", s.dataDir,
		"--seed-file", s.seedFile,
		"--registry", "inmemory",
		"--log-mode", "quiet",
	)
}

func (s *RootSuite) TestVersion() {
	stdout, _, err := s.execute("version", "--output", "json")
	s.Require().NoError(err)

	var info version.BuildVersionInfo
	s.Require().NoError(json.Unmarshal([]byte(stdout), &info))
	s.Equal(version.Get().GitVersion, info.GitVersion)
}

func (s *RootSuite) TestResolve() {
	stdout, _, err := s.execute(s.nodeArgs("resolve",
		"--name", "nightly", "--user", "alice", "--version", "1",
		"--cluster", "tags=gpu", "--cluster", "tags=prod",
		"--command", "name=hive",
		"--application", "spark",
		"--memory", "2GB",
		"--output", "json")...)
	s.Require().NoError(err)

	var resolved struct {
		Cluster          struct{ ID string }
		Command          struct{ ID string }
		ClusterCriterion int
		Applications     []struct{ ID string }
		Memory           int
	}
	s.Require().NoError(json.Unmarshal([]byte(stdout), &resolved))
	s.Equal("prod-1", resolved.Cluster.ID)
	s.Equal("hive", resolved.Command.ID)
	s.Equal(1, resolved.ClusterCriterion)
	s.Require().Len(resolved.Applications, 1)
	s.Equal("spark", resolved.Applications[0].ID)
	s.Equal(2048, resolved.Memory)
}

func (s *RootSuite) TestResolveNoMatchingCluster() {
	_, _, err := s.execute(s.nodeArgs("resolve",
		"--name", "nightly", "--user", "alice", "--version", "1",
		"--cluster", "tags=gpu", "--command", "name=hive")...)
	s.Require().Error(err)
	s.Contains(err.Error(), "no active cluster matches")
}

func (s *RootSuite) TestSubmitFromFile() {
	requestFile := filepath.Join(s.dataDir, "job.yaml")
	s.Require().NoError(os.WriteFile(requestFile, []byte(`
name: nightly
user: alice
version: "1"
clusterCriteria:
  - tags: [prod]
commandCriterion:
  name: hive
`), 0o644))

	stdout, _, err := s.execute(s.nodeArgs("submit", "-f", requestFile, "--id-only",
		"--disable-launcher", "local")...)
	s.Require().NoError(err)

	_, err = uuid.Parse(strings.TrimSpace(stdout))
	s.NoError(err)
}

func (s *RootSuite) TestSubmitTable() {
	stdout, _, err := s.execute(s.nodeArgs("submit",
		"--name", "nightly", "--user", "alice", "--version", "1",
		"--cluster", "tags=prod", "--command", "name=hive",
		"--disable-launcher", "local", "--no-style")...)
	s.Require().NoError(err)
	s.Contains(stdout, "RUNNING")
	s.Contains(stdout, "prod-1")
}

func (s *RootSuite) TestSubmitInvalidRequest() {
	_, _, err := s.execute(s.nodeArgs("submit",
		"--name", "nightly", "--version", "1",
		"--cluster", "tags=prod", "--command", "name=hive")...)
	s.Require().Error(err)
	s.Contains(err.Error(), "job user cannot be blank")
}

func (s *RootSuite) TestInvalidCriterionFlag() {
	_, _, err := s.execute(s.nodeArgs("resolve", "--cluster", "colour=red")...)
	s.ErrorContains(err, "unknown criterion field")
}

func (s *RootSuite) TestMissingConfigFile() {
	_, _, err := s.execute(s.nodeArgs("resolve", "-c", filepath.Join(s.dataDir, "missing.yaml"))...)
	s.ErrorContains(err, "doesn't exist")
}
