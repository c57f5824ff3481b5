package strategy

import (
	"fmt"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

// AttributesFunc exposes a candidate to expressions. It must return a fresh
// map on every call.
type AttributesFunc[R any] func(R) map[string]any

// ResourceAttributes exposes the registry metadata of a cluster, command or
// application.
func ResourceAttributes[R models.Taggable](r R) map[string]any {
	return map[string]any{
		"id":      r.GetID(),
		"name":    r.GetName(),
		"version": r.GetVersion(),
		"tags":    append([]string{}, r.GetTags()...),
		"status":  string(r.GetStatus()),
	}
}

// LauncherAttributes exposes an agent launcher.
func LauncherAttributes(l agent.Launcher) map[string]any {
	return map[string]any{
		"name": l.Name(),
	}
}

// JobAttributes exposes the job being resolved.
func JobAttributes[R any](sc selection.Context[R]) map[string]any {
	req := sc.JobRequest()
	memory := 0
	if req.Memory != nil {
		memory = *req.Memory
	}
	return map[string]any{
		"id":              sc.JobID(),
		"name":            req.Name,
		"user":            req.User,
		"group":           req.Group,
		"version":         req.Version,
		"tags":            append([]string{}, req.Tags...),
		"memory":          memory,
		"commandArgs":     append([]string{}, req.CommandArgs...),
		"grouping":        req.Grouping,
		"submittedViaApi": sc.SubmittedViaAPI(),
	}
}

func rationalef(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
