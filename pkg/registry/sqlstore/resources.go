package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/registry"
)

const metaColumns = `id, name, version, username, description, status, tags, setup_file, configs, dependencies, created, updated`

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type metaRow struct {
	meta             models.ResourceMeta
	exec             models.ExecutionResources
	tags             string
	configs          string
	dependencies     string
	created, updated int64
}

func (r *metaRow) dest() []any {
	return []any{
		&r.meta.ID, &r.meta.Name, &r.meta.Version, &r.meta.User, &r.meta.Description, &r.meta.Status,
		&r.tags, &r.exec.SetupFile, &r.configs, &r.dependencies, &r.created, &r.updated,
	}
}

func (r *metaRow) decode() error {
	if err := decodeJSONList(r.tags, &r.meta.Tags); err != nil {
		return err
	}
	if err := decodeJSONList(r.configs, &r.exec.ConfigFiles); err != nil {
		return err
	}
	if err := decodeJSONList(r.dependencies, &r.exec.Dependencies); err != nil {
		return err
	}
	r.meta.Created = fromNano(r.created)
	r.meta.Updated = fromNano(r.updated)
	return nil
}

func decodeJSONList(raw string, out *[]string) error {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return err
	}
	if len(list) > 0 {
		*out = list
	}
	return nil
}

func encodeJSONList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func metaArgs(m models.ResourceMeta, e models.ExecutionResources, now int64) []any {
	return []any{
		m.ID, m.Name, m.Version, m.User, m.Description, string(m.Status),
		encodeJSONList(m.Tags), e.SetupFile, encodeJSONList(e.ConfigFiles), encodeJSONList(e.Dependencies),
		now, now,
	}
}

const metaUpdateSet = `name = excluded.name, version = excluded.version, username = excluded.username,
	description = excluded.description, status = excluded.status, tags = excluded.tags,
	setup_file = excluded.setup_file, configs = excluded.configs, dependencies = excluded.dependencies,
	updated = excluded.updated`

// criterionFilter pushes the cheap equality parts of a criterion into SQL.
// Tags and version ranges are always re-checked with the matcher.
func criterionFilter(c models.Criterion, alias string) (string, []any) {
	if c.ID() != "" {
		return " AND " + alias + "id = ?", []any{c.ID()}
	}
	if c.Name() != "" {
		return " AND " + alias + "name = ?", []any{c.Name()}
	}
	return "", nil
}

func (s *Store) FindClustersMatching(ctx context.Context, criterion models.Criterion) ([]models.Cluster, error) {
	var result []models.Cluster
	err := s.withConn(ctx, "FindClustersMatching", func(ctx context.Context, c SQLClient) error {
		filter, args := criterionFilter(criterion, "")
		query := `SELECT ` + metaColumns + ` FROM clusters WHERE status = ?` + filter + ` ORDER BY seq`
		rows, err := c.QueryContext(ctx, s.rebind(query), append([]any{string(models.ResourceStatusActive)}, args...)...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row metaRow
			if err = rows.Scan(row.dest()...); err != nil {
				return err
			}
			if err = row.decode(); err != nil {
				return err
			}
			cluster := models.Cluster{ResourceMeta: row.meta, ExecutionResources: row.exec}
			if s.matcher.Matches(criterion, cluster) {
				result = append(result, cluster)
			}
		}
		return rows.Err()
	})
	return result, err
}

func (s *Store) FindCommandsForCluster(
	ctx context.Context, clusterID string, criterion models.Criterion) ([]models.Command, error) {
	var result []models.Command
	err := s.withConn(ctx, "FindCommandsForCluster", func(ctx context.Context, c SQLClient) error {
		if err := s.exists(ctx, c, "clusters", clusterID); err != nil {
			return err
		}
		filter, args := criterionFilter(criterion, "c.")
		query := `SELECT c.id, c.name, c.version, c.username, c.description, c.status, c.tags, c.setup_file,
			c.configs, c.dependencies, c.created, c.updated, c.executable, c.memory
			FROM cluster_commands cc JOIN commands c ON c.id = cc.command_id
			WHERE cc.cluster_id = ? AND c.status = ?` + filter + ` ORDER BY cc.position`
		queryArgs := append([]any{clusterID, string(models.ResourceStatusActive)}, args...)
		rows, err := c.QueryContext(ctx, s.rebind(query), queryArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row metaRow
			var executable string
			var memory sql.NullInt64
			if err = rows.Scan(append(row.dest(), &executable, &memory)...); err != nil {
				return err
			}
			if err = row.decode(); err != nil {
				return err
			}
			cmd := models.Command{ResourceMeta: row.meta, ExecutionResources: row.exec}
			if err = decodeJSONList(executable, &cmd.Executable); err != nil {
				return err
			}
			if memory.Valid {
				m := int(memory.Int64)
				cmd.Memory = &m
			}
			if s.matcher.Matches(criterion, cmd) {
				result = append(result, cmd)
			}
		}
		return rows.Err()
	})
	return result, err
}

func (s *Store) GetApplicationsForCommand(ctx context.Context, commandID string) ([]models.Application, error) {
	result := []models.Application{}
	err := s.withConn(ctx, "GetApplicationsForCommand", func(ctx context.Context, c SQLClient) error {
		if err := s.exists(ctx, c, "commands", commandID); err != nil {
			return err
		}
		query := `SELECT a.id, a.name, a.version, a.username, a.description, a.status, a.tags, a.setup_file,
			a.configs, a.dependencies, a.created, a.updated, a.app_type
			FROM command_applications ca JOIN applications a ON a.id = ca.application_id
			WHERE ca.command_id = ? ORDER BY ca.position`
		rows, err := c.QueryContext(ctx, s.rebind(query), commandID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row metaRow
			var appType string
			if err = rows.Scan(append(row.dest(), &appType)...); err != nil {
				return err
			}
			if err = row.decode(); err != nil {
				return err
			}
			result = append(result, models.Application{ResourceMeta: row.meta, ExecutionResources: row.exec, Type: appType})
		}
		return rows.Err()
	})
	return result, err
}

var kindByTable = map[string]string{
	"clusters":     "cluster",
	"commands":     "command",
	"applications": "application",
	"jobs":         "job",
}

// exists returns a not found error when no row with id exists in table.
// table is never user input.
func (s *Store) exists(ctx context.Context, c SQLClient, table, id string) error {
	var one int
	err := c.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM `+table+` WHERE id = ?`), id).Scan(&one)
	if err == sql.ErrNoRows {
		return registry.NewErrNotFound(kindByTable[table], id)
	}
	return err
}

func (s *Store) PutCluster(ctx context.Context, cluster models.Cluster) error {
	cluster.Normalize()
	if err := cluster.Validate(); err != nil {
		return err
	}
	return s.withConn(ctx, "PutCluster", func(ctx context.Context, c SQLClient) error {
		query := `INSERT INTO clusters (` + metaColumns + `, seq)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM clusters))
			ON CONFLICT (id) DO UPDATE SET ` + metaUpdateSet
		_, err := c.ExecContext(ctx, s.rebind(query), metaArgs(cluster.ResourceMeta, cluster.ExecutionResources, s.nowNano())...)
		return err
	})
}

func (s *Store) PutCommand(ctx context.Context, command models.Command) error {
	command.Normalize()
	if err := command.Validate(); err != nil {
		return err
	}
	return s.withConn(ctx, "PutCommand", func(ctx context.Context, c SQLClient) error {
		var memory sql.NullInt64
		if command.Memory != nil {
			memory = sql.NullInt64{Int64: int64(*command.Memory), Valid: true}
		}
		query := `INSERT INTO commands (` + metaColumns + `, executable, memory)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
			ON CONFLICT (id) DO UPDATE SET ` + metaUpdateSet + `,
			executable = excluded.executable, memory = excluded.memory`
		args := append(metaArgs(command.ResourceMeta, command.ExecutionResources, s.nowNano()),
			encodeJSONList(command.Executable), memory)
		_, err := c.ExecContext(ctx, s.rebind(query), args...)
		return err
	})
}

func (s *Store) PutApplication(ctx context.Context, application models.Application) error {
	application.Normalize()
	if err := application.Validate(); err != nil {
		return err
	}
	return s.withConn(ctx, "PutApplication", func(ctx context.Context, c SQLClient) error {
		query := `INSERT INTO applications (` + metaColumns + `, app_type)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
			ON CONFLICT (id) DO UPDATE SET ` + metaUpdateSet + `, app_type = excluded.app_type`
		args := append(metaArgs(application.ResourceMeta, application.ExecutionResources, s.nowNano()), application.Type)
		_, err := c.ExecContext(ctx, s.rebind(query), args...)
		return err
	})
}

func (s *Store) SetClusterCommands(ctx context.Context, clusterID string, commandIDs []string) error {
	return s.replaceRelation(ctx, "SetClusterCommands", relation{
		table:       "cluster_commands",
		ownerColumn: "cluster_id",
		ownerTable:  "clusters",
		childColumn: "command_id",
		childTable:  "commands",
	}, clusterID, commandIDs)
}

func (s *Store) SetCommandApplications(ctx context.Context, commandID string, applicationIDs []string) error {
	return s.replaceRelation(ctx, "SetCommandApplications", relation{
		table:       "command_applications",
		ownerColumn: "command_id",
		ownerTable:  "commands",
		childColumn: "application_id",
		childTable:  "applications",
	}, commandID, applicationIDs)
}

type relation struct {
	table       string
	ownerColumn string
	ownerTable  string
	childColumn string
	childTable  string
}

func (s *Store) replaceRelation(ctx context.Context, op string, rel relation, ownerID string, childIDs []string) error {
	return s.withTx(ctx, op, func(ctx context.Context, tx SQLClient) error {
		if err := s.exists(ctx, tx, rel.ownerTable, ownerID); err != nil {
			return err
		}
		for _, id := range childIDs {
			if err := s.exists(ctx, tx, rel.childTable, id); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM `+rel.table+` WHERE `+rel.ownerColumn+` = ?`), ownerID); err != nil {
			return wrapf(err, "failed to clear %s", rel.table)
		}
		insert := s.rebind(`INSERT INTO ` + rel.table + ` (` + rel.ownerColumn + `, ` + rel.childColumn + `, position) VALUES (?, ?, ?)`)
		for i, id := range childIDs {
			if _, err := tx.ExecContext(ctx, insert, ownerID, id, i); err != nil {
				return wrapf(err, "failed to insert %s", rel.table)
			}
		}
		return nil
	})
}
