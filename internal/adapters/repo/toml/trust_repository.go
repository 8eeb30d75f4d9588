package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	trustFileMode   = 0o600
	trustDirMode    = 0o700
	tempFilePattern = ".trusted-*.toml.tmp"
)

// TrustRepository persists the origins the wallet owner approved, one
// identity per origin.
type TrustRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.TrustRepository = (*TrustRepository)(nil)

func NewTrustRepository(path string) (*TrustRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("trust path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve trust path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &TrustRepository{path: absPath, mu: lockForPath(absPath)}, nil
}

func (r *TrustRepository) Get(ctx context.Context, origin string) (domain.TrustedApp, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrustedApp{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.TrustedApp{}, err
	}

	for _, entry := range file.Apps {
		if entry.Origin == origin {
			return fromTrustSchema(entry)
		}
	}

	return domain.TrustedApp{}, domain.ErrTrustNotFound
}

func (r *TrustRepository) Save(ctx context.Context, app domain.TrustedApp) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if app.Origin == "" {
		return errors.New("save trusted app: origin is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toTrustSchema(app)
	updated := false
	for i := range file.Apps {
		if file.Apps[i].Origin == encoded.Origin {
			file.Apps[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Apps = append(file.Apps, encoded)
	}

	return r.writeSchema(file)
}

func (r *TrustRepository) Delete(ctx context.Context, origin string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Apps[:0]
	removed := false
	for _, entry := range file.Apps {
		if entry.Origin == origin {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return domain.ErrTrustNotFound
	}
	file.Apps = kept

	return r.writeSchema(file)
}

func (r *TrustRepository) readSchema() (trustFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return trustFileSchema{Version: currentTrustSchemaVersion}, nil
		}
		return trustFileSchema{}, fmt.Errorf("read trust file: %w", err)
	}

	var file trustFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return trustFileSchema{}, fmt.Errorf("decode trust file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return trustFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *TrustRepository) writeSchema(file trustFileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), trustDirMode); err != nil {
		return fmt.Errorf("create trust directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode trust file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp trust file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp trust file: %w", err)
	}
	if err := tempFile.Chmod(trustFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp trust file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp trust file: %w", err)
	}
	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace trust file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toTrustSchema(app domain.TrustedApp) trustSchema {
	approvedAt := ""
	if !app.ApprovedAt.IsZero() {
		approvedAt = app.ApprovedAt.UTC().Format(time.RFC3339)
	}

	return trustSchema{
		Origin:     app.Origin,
		Identity:   app.Identity.String(),
		ApprovedAt: approvedAt,
	}
}

func fromTrustSchema(entry trustSchema) (domain.TrustedApp, error) {
	identity, err := domain.ParseIdentity(entry.Identity)
	if err != nil {
		return domain.TrustedApp{}, fmt.Errorf("decode trusted app %q: %w", entry.Origin, err)
	}

	var approvedAt time.Time
	if entry.ApprovedAt != "" {
		approvedAt, err = time.Parse(time.RFC3339, entry.ApprovedAt)
		if err != nil {
			return domain.TrustedApp{}, fmt.Errorf("decode trusted app %q: %w", entry.Origin, err)
		}
	}

	return domain.TrustedApp{Origin: entry.Origin, Identity: identity, ApprovedAt: approvedAt}, nil
}
