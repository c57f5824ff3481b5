//go:build unit || !integration

package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

type SelectionSuite struct {
	suite.Suite
	request  *models.JobRequest
	clusters []models.Cluster
}

func TestSelectionSuite(t *testing.T) {
	suite.Run(t, new(SelectionSuite))
}

func (s *SelectionSuite) SetupTest() {
	s.request = &models.JobRequest{ID: "job-1", Name: "query", User: "alice", SubmittedViaAPI: true}
	s.clusters = []models.Cluster{
		{ResourceMeta: models.ResourceMeta{ID: "c1", Name: "prod-1"}},
		{ResourceMeta: models.ResourceMeta{ID: "c2", Name: "prod-2"}},
	}
}

func (s *SelectionSuite) TestEmptyCandidatesRejected() {
	_, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, nil)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	_, err = NewCommandSelectionContext("job-1", s.request, []models.Command{}, nil)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	_, err = NewAgentLauncherSelectionContext("job-1", s.request, models.JobSpecification{}, nil)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))
}

func (s *SelectionSuite) TestNilRequestRejected() {
	_, err := NewClusterSelectionContext("job-1", nil, models.Command{}, s.clusters)
	s.Error(err)
}

func (s *SelectionSuite) TestClusterContextIsACopy() {
	sc, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, s.clusters)
	s.Require().NoError(err)

	s.clusters[0].ID = "mutated"
	candidates := sc.Candidates()
	s.Equal("c1", candidates[0].ID)

	candidates[1].ID = "mutated"
	s.Equal("c2", sc.Candidates()[1].ID)

	s.Equal("job-1", sc.JobID())
	s.True(sc.SubmittedViaAPI())
	s.Equal("query", sc.JobRequest().Name)
}

func (s *SelectionSuite) TestCommandContextRequiresClustersPerCommand() {
	commands := []models.Command{{ResourceMeta: models.ResourceMeta{ID: "hive"}}}
	_, err := NewCommandSelectionContext("job-1", s.request, commands, map[string][]models.Cluster{})
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	sc, err := NewCommandSelectionContext("job-1", s.request, commands, map[string][]models.Cluster{"hive": s.clusters})
	s.Require().NoError(err)
	s.Len(sc.ClustersFor("hive"), 2)
	s.Empty(sc.ClustersFor("spark"))
	s.Equal([]string{"hive"}, sc.CommandIDs())
}

func (s *SelectionSuite) TestResultContract() {
	selected := Selected("first", s.clusters[0], "")
	s.NoError(selected.Validate())
	r, ok := selected.Resource()
	s.True(ok)
	s.Equal("c1", r.ID)

	empty := NoSelection[models.Cluster]("picky", "none of %d fit", 2)
	s.NoError(empty.Validate())
	s.True(empty.IsEmpty())
	s.Equal("none of 2 fit", empty.Rationale())
	_, ok = empty.Resource()
	s.False(ok)

	s.Error(NoSelection[models.Cluster]("picky", "  ").Validate())
	s.Error(Selected("", s.clusters[0], "").Validate())
}

type stubSelector struct {
	result Result[models.Cluster]
	err    error
}

func (s stubSelector) Identity() string { return "stub" }
func (s stubSelector) Select(context.Context, Context[models.Cluster]) (Result[models.Cluster], error) {
	return s.result, s.err
}

func (s *SelectionSuite) TestRunWrapsSelectorFault() {
	sc, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, s.clusters)
	s.Require().NoError(err)

	_, err = Run[models.Cluster](context.Background(), stubSelector{err: errors.New("scoring service down")}, sc)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.SelectionError))
	var gerr genieerrors.Error
	s.Require().ErrorAs(err, &gerr)
	s.Equal("stub", gerr.Details()["selector"])
	s.Equal("job-1", gerr.Details()["jobID"])
}

func (s *SelectionSuite) TestRunRejectsEmptyResultWithoutRationale() {
	sc, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, s.clusters)
	s.Require().NoError(err)

	_, err = Run[models.Cluster](context.Background(), stubSelector{result: NoSelection[models.Cluster]("stub", "")}, sc)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.SelectionError))
}

func (s *SelectionSuite) TestRunPassesResultThrough() {
	sc, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, s.clusters)
	s.Require().NoError(err)

	result, err := Run[models.Cluster](context.Background(), stubSelector{result: Selected("stub", s.clusters[1], "why not")}, sc)
	s.Require().NoError(err)
	r, _ := result.Resource()
	s.Equal("c2", r.ID)
	s.Equal("why not", result.Rationale())
}

func (s *SelectionSuite) TestRunRejectsResourceOutsideCandidates() {
	sc, err := NewClusterSelectionContext("job-1", s.request, models.Command{}, s.clusters[:1])
	s.Require().NoError(err)

	stranger := models.Cluster{ResourceMeta: models.ResourceMeta{ID: "not-a-candidate"}}
	result, err := Run[models.Cluster](context.Background(), stubSelector{result: Selected("stub", stranger, "")}, sc)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.SelectionError))
	s.ErrorContains(err, "not-a-candidate")
	s.True(result.IsEmpty())
}

func (s *SelectionSuite) TestValidateCandidatesByLauncherName() {
	launchers := []agent.Launcher{namedLauncher{name: "local"}}
	s.NoError(Selected[agent.Launcher]("stub", namedLauncher{name: "local"}, "").ValidateCandidates(launchers))
	s.Error(Selected[agent.Launcher]("stub", namedLauncher{name: "remote"}, "").ValidateCandidates(launchers))
	s.NoError(NoSelection[agent.Launcher]("stub", "none").ValidateCandidates(launchers))
}

type namedLauncher struct {
	agent.Launcher
	name string
}

func (l namedLauncher) Name() string { return l.name }

func (s *SelectionSuite) TestAgentLauncherContext() {
	launchers := []agent.Launcher{nil}
	sc, err := NewAgentLauncherSelectionContext("job-1", s.request, models.JobSpecification{JobID: "job-1"}, launchers)
	s.Require().NoError(err)
	s.Equal("job-1", sc.Specification().JobID)
}
