// Package directory loads the party directory seed file.
package directory

import (
	"context"
	"os"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Parties []seedParty `yaml:"parties"`
}

type seedParty struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
}

// Upserter is implemented by both party stores.
type Upserter interface {
	Upsert(ctx context.Context, acct party.Account) error
}

func Parse(data []byte) ([]party.Account, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "failed to parse directory seed")
	}

	out := make([]party.Account, 0, len(f.Parties))
	for i, p := range f.Parties {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, errs.Wrapf(err, "party %d: invalid id", i)
		}
		t, err := party.NewType(p.Type)
		if err != nil {
			return nil, errs.Wrapf(err, "party %d", i)
		}
		if p.DisplayName == "" {
			return nil, errs.Newf("party %d: display_name is required", i)
		}
		out = append(out, party.Account{ID: id, Type: t, DisplayName: p.DisplayName, Email: p.Email})
	}
	return out, nil
}

// Load reads path and upserts every party. An empty path is a no-op.
func Load(ctx context.Context, path string, dst Upserter) (int, error) {
	if path == "" {
		return 0, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided path
	if err != nil {
		return 0, errs.Wrap(err, "failed to read directory seed")
	}
	accounts, err := Parse(data)
	if err != nil {
		return 0, err
	}
	for _, acct := range accounts {
		if err := dst.Upsert(ctx, acct); err != nil {
			return 0, errs.Wrapf(err, "failed to upsert party %s", acct.ID)
		}
	}
	return len(accounts), nil
}
