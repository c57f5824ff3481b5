package registry

import (
	"context"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

// Seed is a set of resources and their relations loaded from a YAML file.
//
//	applications:
//	  - {id: hadoop-2.7, name: hadoop, version: "2.7", user: admin}
//	commands:
//	  - id: hive
//	    name: hive
//	    version: "2.1"
//	    user: admin
//	    executable: [hive]
//	    applications: [hadoop-2.7]
//	clusters:
//	  - {id: prod-1, name: prod, version: "1", user: admin, tags: [prod, hadoop], commands: [hive]}
type Seed struct {
	Applications []models.Application `json:"applications,omitempty"`
	Commands     []SeedCommand        `json:"commands,omitempty"`
	Clusters     []SeedCluster        `json:"clusters,omitempty"`
}

type SeedCommand struct {
	models.Command
	Applications []string `json:"applications,omitempty"`
}

type SeedCluster struct {
	models.Cluster
	Commands []string `json:"commands,omitempty"`
}

// ParseSeed decodes a YAML or JSON seed document.
func ParseSeed(data []byte) (*Seed, error) {
	seed := new(Seed)
	if err := yaml.UnmarshalStrict(data, seed); err != nil {
		return nil, genieerrors.Wrap(err, "failed to parse registry seed").
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent)
	}
	return seed, nil
}

// LoadSeedFile reads a seed file and writes its content to w.
func LoadSeedFile(ctx context.Context, w ResourceWriter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return genieerrors.Wrap(err, "failed to read registry seed %s", path).
			WithCode(genieerrors.IOError).
			WithComponent(errComponent)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return err
	}
	return seed.Apply(ctx, w)
}

// Apply writes resources first, then relations, so references always resolve.
func (s *Seed) Apply(ctx context.Context, w ResourceWriter) error {
	for _, app := range s.Applications {
		if err := w.PutApplication(ctx, app); err != nil {
			return genieerrors.Wrap(err, "failed to seed application %s", app.ID)
		}
	}
	for _, cmd := range s.Commands {
		if err := w.PutCommand(ctx, cmd.Command); err != nil {
			return genieerrors.Wrap(err, "failed to seed command %s", cmd.ID)
		}
	}
	for _, cluster := range s.Clusters {
		if err := w.PutCluster(ctx, cluster.Cluster); err != nil {
			return genieerrors.Wrap(err, "failed to seed cluster %s", cluster.ID)
		}
	}
	for _, cmd := range s.Commands {
		if len(cmd.Applications) == 0 {
			continue
		}
		if err := w.SetCommandApplications(ctx, cmd.ID, cmd.Applications); err != nil {
			return genieerrors.Wrap(err, "failed to attach applications to command %s", cmd.ID)
		}
	}
	for _, cluster := range s.Clusters {
		if len(cluster.Commands) == 0 {
			continue
		}
		if err := w.SetClusterCommands(ctx, cluster.ID, cluster.Commands); err != nil {
			return genieerrors.Wrap(err, "failed to attach commands to cluster %s", cluster.ID)
		}
	}
	return nil
}
