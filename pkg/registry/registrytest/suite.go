// Package registrytest holds a behavioural test suite shared by every
// registry.Store implementation.
package registrytest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/registry"
)

// StoreSuite runs the same assertions against any Store. Embed it and set
// NewStore.
type StoreSuite struct {
	suite.Suite
	NewStore func() registry.Store
	// Advance moves the store's clock forward, if the store has a controllable one.
	Advance func(d time.Duration)

	Ctx   context.Context
	Store registry.Store
}

func (s *StoreSuite) SetupTest() {
	s.Ctx = context.Background()
	s.Store = s.NewStore()
	s.Require().NoError(Fixture().Apply(s.Ctx, s.Store))
}

func (s *StoreSuite) TearDownTest() {
	if s.Store != nil {
		s.NoError(s.Store.Close(s.Ctx))
	}
}

func meta(id, name, version string, status models.ResourceStatus, tags ...string) models.ResourceMeta {
	return models.ResourceMeta{ID: id, Name: name, Version: version, User: "admin", Status: status, Tags: tags}
}

// Fixture returns a small registry:
//
//	prod-1 {prod,hadoop,extra}  -> hive, spark
//	prod-2 {prod,hadoop}        -> spark, hive-old(INACTIVE)
//	test-1 {test}               -> hive
//	dead-1 {prod,hadoop} (TERMINATED)
//	hive -> hadoop, tez ; spark -> spark-app
func Fixture() *registry.Seed {
	memory := 2048
	return &registry.Seed{
		Applications: []models.Application{
			{ResourceMeta: meta("hadoop", "hadoop", "2.7.3", models.ResourceStatusActive, "type:hadoop")},
			{ResourceMeta: meta("tez", "tez", "0.9", models.ResourceStatusActive), Type: "tez"},
			{ResourceMeta: meta("spark-app", "spark", "3.1", models.ResourceStatusActive)},
		},
		Commands: []registry.SeedCommand{
			{
				Command: models.Command{
					ResourceMeta: meta("hive", "hive", "2.1", models.ResourceStatusActive, "type:hive", "sql"),
					Executable:   []string{"hive"},
					Memory:       &memory,
				},
				Applications: []string{"hadoop", "tez"},
			},
			{
				Command: models.Command{
					ResourceMeta: meta("spark", "spark-submit", "3.1", models.ResourceStatusActive, "type:spark", "sql"),
					Executable:   []string{"spark-submit", "--verbose"},
				},
				Applications: []string{"spark-app"},
			},
			{
				Command: models.Command{
					ResourceMeta: meta("hive-old", "hive", "1.2", models.ResourceStatusInactive, "type:hive"),
					Executable:   []string{"hive"},
				},
			},
		},
		Clusters: []registry.SeedCluster{
			{Cluster: models.Cluster{ResourceMeta: meta("prod-1", "prod", "1", models.ResourceStatusActive, "prod", "hadoop", "extra")}, Commands: []string{"hive", "spark"}},
			{Cluster: models.Cluster{ResourceMeta: meta("prod-2", "prod", "2", models.ResourceStatusActive, "prod", "hadoop")}, Commands: []string{"spark", "hive-old"}},
			{Cluster: models.Cluster{ResourceMeta: meta("test-1", "test", "1", models.ResourceStatusActive, "test")}, Commands: []string{"hive"}},
			{Cluster: models.Cluster{ResourceMeta: meta("dead-1", "prod", "0", models.ResourceStatusTerminated, "prod", "hadoop")}, Commands: []string{"hive"}},
		},
	}
}

func clusterIDs(clusters []models.Cluster) []string {
	ids := make([]string, len(clusters))
	for i, c := range clusters {
		ids[i] = c.ID
	}
	return ids
}

func commandIDs(commands []models.Command) []string {
	ids := make([]string, len(commands))
	for i, c := range commands {
		ids[i] = c.ID
	}
	return ids
}

func (s *StoreSuite) TestFindClustersMatchingActiveOnlyInOrder() {
	clusters, err := s.Store.FindClustersMatching(s.Ctx, models.NewCriterionBuilder().Tags("prod", "hadoop").MustBuild())
	s.Require().NoError(err)
	s.Equal([]string{"prod-1", "prod-2"}, clusterIDs(clusters))
	s.Equal([]string{"extra", "hadoop", "prod"}, clusters[0].Tags)
}

func (s *StoreSuite) TestFindClustersMatchingNoMatchIsEmpty() {
	clusters, err := s.Store.FindClustersMatching(s.Ctx, models.NewCriterionBuilder().Tags("gpu").MustBuild())
	s.Require().NoError(err)
	s.Empty(clusters)
}

func (s *StoreSuite) TestFindClustersByID() {
	clusters, err := s.Store.FindClustersMatching(s.Ctx, models.NewCriterionBuilder().ID("test-1").MustBuild())
	s.Require().NoError(err)
	s.Equal([]string{"test-1"}, clusterIDs(clusters))

	clusters, err = s.Store.FindClustersMatching(s.Ctx, models.NewCriterionBuilder().ID("dead-1").MustBuild())
	s.Require().NoError(err)
	s.Empty(clusters, "terminated clusters are never returned")
}

func (s *StoreSuite) TestFindCommandsForCluster() {
	commands, err := s.Store.FindCommandsForCluster(s.Ctx, "prod-1", models.NewCriterionBuilder().Tags("type:hive").MustBuild())
	s.Require().NoError(err)
	s.Equal([]string{"hive"}, commandIDs(commands))
	s.Require().NotNil(commands[0].Memory)
	s.Equal(2048, *commands[0].Memory)
	s.Equal([]string{"hive"}, commands[0].Executable)

	// hive-old is attached but inactive
	commands, err = s.Store.FindCommandsForCluster(s.Ctx, "prod-2", models.NewCriterionBuilder().Name("hive").MustBuild())
	s.Require().NoError(err)
	s.Empty(commands)
}

func (s *StoreSuite) TestFindCommandsForClusterPriorityOrder() {
	commands, err := s.Store.FindCommandsForCluster(s.Ctx, "prod-2", models.NewCriterionBuilder().Version("3.1").MustBuild())
	s.Require().NoError(err)
	s.Equal([]string{"spark"}, commandIDs(commands))

	sql := models.NewCriterionBuilder().Tags("sql").MustBuild()
	commands, err = s.Store.FindCommandsForCluster(s.Ctx, "prod-1", sql)
	s.Require().NoError(err)
	s.Equal([]string{"hive", "spark"}, commandIDs(commands))

	s.Require().NoError(s.Store.SetClusterCommands(s.Ctx, "prod-1", []string{"spark", "hive"}))
	commands, err = s.Store.FindCommandsForCluster(s.Ctx, "prod-1", sql)
	s.Require().NoError(err)
	s.Equal([]string{"spark", "hive"}, commandIDs(commands))
}

func (s *StoreSuite) TestFindCommandsForUnknownCluster() {
	_, err := s.Store.FindCommandsForCluster(s.Ctx, "nope", models.NewCriterionBuilder().Name("hive").MustBuild())
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
}

func (s *StoreSuite) TestGetApplicationsForCommand() {
	apps, err := s.Store.GetApplicationsForCommand(s.Ctx, "hive")
	s.Require().NoError(err)
	s.Equal([]string{"hadoop", "tez"}, models.ApplicationIDs(apps))
	s.Equal("tez", apps[1].Type)

	apps, err = s.Store.GetApplicationsForCommand(s.Ctx, "hive-old")
	s.Require().NoError(err)
	s.Empty(apps)

	_, err = s.Store.GetApplicationsForCommand(s.Ctx, "nope")
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
}

func (s *StoreSuite) TestRelationsRejectUnknownIDs() {
	err := s.Store.SetClusterCommands(s.Ctx, "prod-1", []string{"missing"})
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
	err = s.Store.SetCommandApplications(s.Ctx, "hive", []string{"missing"})
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
}

func (s *StoreSuite) TestPutRejectsInvalidResource() {
	err := s.Store.PutCluster(s.Ctx, models.Cluster{ResourceMeta: models.ResourceMeta{ID: "x"}})
	s.Error(err)
}

func (s *StoreSuite) TestJobLifecycle() {
	req := models.JobRequest{
		ID:               "job-1",
		Name:             "nightly",
		User:             "etl",
		Version:          "1",
		ClusterCriteria:  []models.Criterion{models.NewCriterionBuilder().Tags("prod").MustBuild()},
		CommandCriterion: models.NewCriterionBuilder().Name("hive").MustBuild(),
	}
	s.Require().NoError(s.Store.SaveJobRequest(s.Ctx, req))

	err := s.Store.SaveJobRequest(s.Ctx, req)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError), "duplicate job ids are rejected")

	job, err := s.Store.GetJob(s.Ctx, "job-1")
	s.Require().NoError(err)
	s.Equal(models.JobStatusAccepted, job.Status)
	s.Equal("nightly", job.Request.Name)
	s.Equal("hive", job.Request.CommandCriterion.Name())

	s.Require().NoError(s.Store.SetJobResolution(s.Ctx, "job-1", "prod-1", "hive"))
	s.Require().NoError(s.Store.UpdateJobStatus(s.Ctx, "job-1", models.JobStatusRunning, "launched"))

	job, err = s.Store.GetJob(s.Ctx, "job-1")
	s.Require().NoError(err)
	s.Equal(models.JobStatusRunning, job.Status)
	s.Equal("launched", job.StatusMessage)
	s.Equal("prod-1", job.ClusterID)
	s.Equal("hive", job.CommandID)

	err = s.Store.UpdateJobStatus(s.Ctx, "missing", models.JobStatusFailed, "x")
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
	_, err = s.Store.GetJob(s.Ctx, "missing")
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
}

func (s *StoreSuite) TestDeleteJobsCreatedBefore() {
	if s.Advance == nil {
		s.T().Skip("store has no controllable clock")
	}
	base := models.JobRequest{
		Name:             "n",
		User:             "u",
		Version:          "1",
		ClusterCriteria:  []models.Criterion{models.NewCriterionBuilder().Tags("prod").MustBuild()},
		CommandCriterion: models.NewCriterionBuilder().Name("hive").MustBuild(),
	}
	for _, id := range []string{"old-done", "old-running", "old-failed"} {
		req := base
		req.ID = id
		s.Require().NoError(s.Store.SaveJobRequest(s.Ctx, req))
	}
	s.Require().NoError(s.Store.UpdateJobStatus(s.Ctx, "old-done", models.JobStatusSucceeded, ""))
	s.Require().NoError(s.Store.UpdateJobStatus(s.Ctx, "old-running", models.JobStatusRunning, ""))
	s.Require().NoError(s.Store.UpdateJobStatus(s.Ctx, "old-failed", models.JobStatusFailed, ""))

	s.Advance(2 * time.Hour)
	recent := base
	recent.ID = "new-done"
	s.Require().NoError(s.Store.SaveJobRequest(s.Ctx, recent))
	s.Require().NoError(s.Store.UpdateJobStatus(s.Ctx, "new-done", models.JobStatusSucceeded, ""))

	cutoff := s.now().Add(-time.Hour)
	deleted, err := s.Store.DeleteJobsCreatedBefore(s.Ctx, cutoff, 1)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	deleted, err = s.Store.DeleteJobsCreatedBefore(s.Ctx, cutoff, 10)
	s.Require().NoError(err)
	s.Equal(1, deleted)

	_, err = s.Store.GetJob(s.Ctx, "old-running")
	s.NoError(err, "non terminal jobs are kept")
	_, err = s.Store.GetJob(s.Ctx, "new-done")
	s.NoError(err, "recent jobs are kept")
}

func (s *StoreSuite) now() time.Time {
	job, err := s.Store.GetJob(s.Ctx, "new-done")
	s.Require().NoError(err)
	return job.Created
}
