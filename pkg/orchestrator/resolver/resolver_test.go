//go:build unit || !integration

package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
	"github.com/genie-oss/genie/pkg/orchestrator/selection/strategy"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/inmemory"
	"github.com/genie-oss/genie/pkg/registry/registrytest"
)

type ResolverSuite struct {
	suite.Suite
	ctx      context.Context
	store    *inmemory.Store
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = inmemory.NewStore()
	s.Require().NoError(registrytest.Fixture().Apply(s.ctx, s.store))
	s.resolver = s.newResolver(s.store, strategy.NewFirstMatch[models.Command](""), strategy.NewFirstMatch[models.Cluster](""))
}

func (s *ResolverSuite) newResolver(
	reg registry.Registry, commands selection.CommandSelector, clusters selection.ClusterSelector) *Resolver {
	r, err := NewResolver(Params{
		Registry:        reg,
		CommandSelector: commands,
		ClusterSelector: clusters,
		DefaultMemory:   1024,
		MaxMemory:       4096,
		DefaultTimeout:  time.Hour,
	})
	s.Require().NoError(err)
	return r
}

func tags(t ...string) models.Criterion {
	return models.NewCriterionBuilder().Tags(t...).MustBuild()
}

func name(n string) models.Criterion {
	return models.NewCriterionBuilder().Name(n).MustBuild()
}

func (s *ResolverSuite) request(clusterCriteria ...models.Criterion) *models.JobRequest {
	return &models.JobRequest{
		ID:               "job-1",
		Name:             "query",
		User:             "alice",
		Version:          "1",
		ClusterCriteria:  clusterCriteria,
		CommandCriterion: name("hive"),
	}
}

func (s *ResolverSuite) TestEndToEndPlacement() {
	resolved, err := s.resolver.Resolve(s.ctx, "job-1", s.request(tags("prod", "hadoop")))
	s.Require().NoError(err)
	s.Equal("prod-1", resolved.Cluster.ID)
	s.Equal("hive", resolved.Command.ID)
	s.Equal(0, resolved.ClusterCriterion)
	s.Equal([]string{"hadoop", "tez"}, models.ApplicationIDs(resolved.Applications))
	s.Equal(2048, resolved.Memory, "command memory is used when the request has none")
	s.Equal(time.Hour, resolved.Timeout)
	s.Len(resolved.Rationales, 2)
}

func (s *ResolverSuite) TestClusterCriteriaFallback() {
	resolved, err := s.resolver.ResolveClusterCommand(s.ctx, "job-1", s.request(tags("gpu"), tags("test")))
	s.Require().NoError(err)
	s.Equal("test-1", resolved.Cluster.ID)
	s.Equal(1, resolved.ClusterCriterion)
}

func (s *ResolverSuite) TestLaterCriteriaNotConsulted() {
	ctrl := gomock.NewController(s.T())
	reg := registry.NewMockRegistry(ctrl)
	first := tags("prod")
	cluster := models.Cluster{ResourceMeta: models.ResourceMeta{ID: "c1"}}
	command := models.Command{ResourceMeta: models.ResourceMeta{ID: "hive"}}

	reg.EXPECT().FindClustersMatching(gomock.Any(), first).Return([]models.Cluster{cluster}, nil).Times(1)
	reg.EXPECT().FindCommandsForCluster(gomock.Any(), "c1", gomock.Any()).Return([]models.Command{command}, nil)

	r := s.newResolver(reg, strategy.NewFirstMatch[models.Command](""), strategy.NewFirstMatch[models.Cluster](""))
	resolved, err := r.ResolveClusterCommand(s.ctx, "job-1", s.request(first, tags("never", "asked")))
	s.Require().NoError(err)
	s.Equal("c1", resolved.Cluster.ID)
}

func (s *ResolverSuite) TestNoMatchingCluster() {
	_, err := s.resolver.Resolve(s.ctx, "job-1", s.request(tags("gpu"), tags("arm")))
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NoMatchingClusterError))
	var gerr genieerrors.Error
	s.Require().ErrorAs(err, &gerr)
	s.Equal("job-1", gerr.Details()["jobID"])
	s.Contains(gerr.Details()["clusterCriteria"], "gpu")
}

func (s *ResolverSuite) TestNoMatchingCommand() {
	req := s.request(tags("test"))
	req.CommandCriterion = name("spark-submit")
	_, err := s.resolver.Resolve(s.ctx, "job-1", req)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NoMatchingCommandError))
}

func (s *ResolverSuite) TestCommandsAcrossClustersAreDistinct() {
	req := s.request(tags("prod", "hadoop"))
	req.CommandCriterion = tags("sql")

	var seen *selection.CommandSelectionContext
	commands := selectorFunc[models.Command](func(sc selection.Context[models.Command]) selection.Result[models.Command] {
		seen = sc.(*selection.CommandSelectionContext)
		return selection.Selected("spy", sc.Candidates()[1], "")
	})
	r := s.newResolver(s.store, commands, strategy.NewFirstMatch[models.Cluster](""))

	resolved, err := r.ResolveClusterCommand(s.ctx, "job-1", req)
	s.Require().NoError(err)
	s.Require().NotNil(seen)

	candidates := seen.Candidates()
	s.Len(candidates, 2)
	s.Equal("hive", candidates[0].ID)
	s.Equal("spark", candidates[1].ID)
	s.Len(seen.ClustersFor("spark"), 2)
	s.Len(seen.ClustersFor("hive"), 1)

	s.Equal("spark", resolved.Command.ID)
	s.Equal("prod-1", resolved.Cluster.ID)
}

func (s *ResolverSuite) TestNoResourceSelected() {
	never, err := strategy.NewExpression(strategy.ExpressionParams[models.Cluster]{
		Identity:   "never",
		Expression: "false",
		Attributes: strategy.ResourceAttributes[models.Cluster],
	})
	s.Require().NoError(err)
	r := s.newResolver(s.store, strategy.NewFirstMatch[models.Command](""), never)

	_, err = r.Resolve(s.ctx, "job-1", s.request(tags("prod")))
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NoResourceSelectedError))
	var gerr genieerrors.Error
	s.Require().ErrorAs(err, &gerr)
	s.Equal("never", gerr.Details()["selector"])
	s.NotEmpty(gerr.Details()["rationale"])
}

func (s *ResolverSuite) TestRequestedApplicationsFollowRequestOrder() {
	req := s.request(tags("prod"))
	req.RequestedApplications = []string{"tez", "hadoop"}
	resolved, err := s.resolver.Resolve(s.ctx, "job-1", req)
	s.Require().NoError(err)
	s.Equal([]string{"tez", "hadoop"}, models.ApplicationIDs(resolved.Applications))

	req.RequestedApplications = []string{"hadoop", "spark-app"}
	_, err = s.resolver.Resolve(s.ctx, "job-1", req)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ApplicationNotFoundError))
}

func (s *ResolverSuite) TestMemoryAndTimeout() {
	req := s.request(tags("prod"))
	memory, timeout := 3000, 90
	req.Memory = &memory
	req.Timeout = &timeout
	resolved, err := s.resolver.Resolve(s.ctx, "job-1", req)
	s.Require().NoError(err)
	s.Equal(3000, resolved.Memory)
	s.Equal(90*time.Second, resolved.Timeout)

	memory = 8192
	_, err = s.resolver.Resolve(s.ctx, "job-1", req)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	req = s.request(tags("prod"))
	req.CommandCriterion = name("spark-submit")
	resolved, err = s.resolver.Resolve(s.ctx, "job-1", req)
	s.Require().NoError(err)
	s.Equal(1024, resolved.Memory, "default memory applies when neither request nor command sets it")
}

func (s *ResolverSuite) TestRegistryFailureIsNotNoMatch() {
	ctrl := gomock.NewController(s.T())
	reg := registry.NewMockRegistry(ctrl)
	readErr := registry.NewTransientError(registry.QueryTimeout, "FindClustersMatching", context.DeadlineExceeded)
	reg.EXPECT().FindClustersMatching(gomock.Any(), gomock.Any()).Return(nil, readErr).Times(1)

	r := s.newResolver(reg, strategy.NewFirstMatch[models.Command](""), strategy.NewFirstMatch[models.Cluster](""))
	_, err := r.Resolve(s.ctx, "job-1", s.request(tags("prod"), tags("test")))
	s.ErrorIs(err, readErr)
	s.False(genieerrors.IsErrorWithCode(err, genieerrors.NoMatchingClusterError))
}

func (s *ResolverSuite) TestInvalidParams() {
	_, err := NewResolver(Params{})
	s.Error(err)
}

type selectorFunc[R any] func(sc selection.Context[R]) selection.Result[R]

func (f selectorFunc[R]) Identity() string { return "spy" }
func (f selectorFunc[R]) Select(_ context.Context, sc selection.Context[R]) (selection.Result[R], error) {
	return f(sc), nil
}
