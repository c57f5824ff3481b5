package resolver

import (
	"strings"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

const errComponent = "ResourceResolver"

func criteriaString(criteria []models.Criterion) string {
	parts := make([]string, len(criteria))
	for i, c := range criteria {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func NewErrNoMatchingCluster(jobID string, criteria []models.Criterion) genieerrors.Error {
	return genieerrors.New("no active cluster matches any cluster criterion of job %s", jobID).
		WithCode(genieerrors.NoMatchingClusterError).
		WithComponent(errComponent).
		WithHint("check the cluster criteria tags against the registered clusters").
		WithDetail("jobID", jobID).
		WithDetail("clusterCriteria", criteriaString(criteria))
}

func NewErrNoMatchingCommand(jobID string, clusterCriterion, commandCriterion models.Criterion, clusterIDs []string) genieerrors.Error {
	return genieerrors.New("no active command matching %s on clusters %v for job %s", commandCriterion, clusterIDs, jobID).
		WithCode(genieerrors.NoMatchingCommandError).
		WithComponent(errComponent).
		WithDetail("jobID", jobID).
		WithDetail("clusterCriterion", clusterCriterion.String()).
		WithDetail("commandCriterion", commandCriterion.String()).
		WithDetail("clusters", strings.Join(clusterIDs, ","))
}

func NewErrNoResourceSelected(jobID, kind, selector, rationale string) genieerrors.Error {
	return genieerrors.New("no %s selected for job %s: %s", kind, jobID, rationale).
		WithCode(genieerrors.NoResourceSelectedError).
		WithComponent(errComponent).
		WithDetail("jobID", jobID).
		WithDetail("selector", selector).
		WithDetail("rationale", rationale)
}

func NewErrApplicationNotFound(jobID, commandID, applicationID string) genieerrors.Error {
	return genieerrors.New("application %s requested by job %s is not attached to command %s", applicationID, jobID, commandID).
		WithCode(genieerrors.ApplicationNotFoundError).
		WithComponent(errComponent).
		WithDetail("jobID", jobID).
		WithDetail("commandID", commandID).
		WithDetail("applicationID", applicationID)
}

func NewErrMemoryExceeded(jobID string, memory, limit int) genieerrors.Error {
	return genieerrors.New("job %s requests %d MB of memory, the limit is %d MB", jobID, memory, limit).
		WithCode(genieerrors.ValidationError).
		WithComponent(errComponent).
		WithDetail("jobID", jobID)
}
