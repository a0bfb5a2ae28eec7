// Package ynab4 locates YNAB4 budgets on disk and loads them.
//
// A config root (usually ~/Dropbox/YNAB) contains one "<name>~<id>.ynab4"
// directory per budget. Each holds a Budget.ymeta descriptor naming the data
// folder, which in turn holds one directory per device. The device
// directory carries the Budget.yfull document.
package ynab4

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/models"
)

const (
	Extension    = ".ynab4"
	MetaFile     = "Budget.ymeta"
	DocumentFile = "Budget.yfull"

	deviceDirPattern = "[0-9A-Z]*-*-*-*-*[0-9A-Z]"
)

// ConfigDir is the directory holding every budget.
type ConfigDir struct {
	fs     afero.Fs
	root   string
	logger *log.Logger
}

func NewConfigDir(fs afero.Fs, root string, logger *log.Logger) *ConfigDir {
	return &ConfigDir{fs: fs, root: root, logger: logger}
}

func (c *ConfigDir) Root() string { return c.root }

// Budgets returns the names of the budgets found under the root.
func (c *ConfigDir) Budgets() ([]string, error) {
	entries, err := c.readDir(c.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), Extension)
		if i := strings.LastIndexByte(name, '~'); i > 0 {
			name = name[:i]
		}
		names = append(names, name)
	}
	return names, nil
}

// Open returns the first budget directory matching "<name>*.ynab4".
func (c *ConfigDir) Open(name string) (*BudgetDir, error) {
	entries, err := c.readDir(c.root)
	if err != nil {
		return nil, err
	}
	pattern := escapeGlob(name) + "*" + Extension
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid budget name %q: %w", name, err)
		}
		if ok {
			dir := filepath.Join(c.root, entry.Name())
			c.logger.Debug("found budget", "name", name, "dir", dir)
			return &BudgetDir{fs: c.fs, root: dir, logger: c.logger}, nil
		}
	}
	return nil, fmt.Errorf("%w: no %q budget in %s", budget.ErrNotFound, name, c.root)
}

func (c *ConfigDir) readDir(dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", budget.ErrNotFound, dir, err)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	return entries, nil
}

// BudgetDir is a single "*.ynab4" budget directory.
type BudgetDir struct {
	fs     afero.Fs
	root   string
	logger *log.Logger
}

// OpenBudgetDir wraps a known "*.ynab4" directory.
func OpenBudgetDir(fs afero.Fs, dir string, logger *log.Logger) *BudgetDir {
	return &BudgetDir{fs: fs, root: dir, logger: logger}
}

func (b *BudgetDir) Root() string { return b.root }

// DataPath returns the device directory holding the budget document.
func (b *BudgetDir) DataPath() (string, error) {
	metaPath := filepath.Join(b.root, MetaFile)
	var meta models.Meta
	if err := b.decode(metaPath, &meta); err != nil {
		return "", err
	}
	if meta.RelativeDataFolderName == nil || *meta.RelativeDataFolderName == "" {
		return "", fmt.Errorf("%s: relativeDataFolderName: %w", metaPath, budget.ErrMalformedRecord)
	}

	dataDir := filepath.Join(b.root, *meta.RelativeDataFolderName)
	entries, err := afero.ReadDir(b.fs, dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: data folder %s", budget.ErrNotFound, dataDir)
		}
		return "", fmt.Errorf("failed to read data folder %s: %w", dataDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(deviceDirPattern, entry.Name()); ok {
			return filepath.Join(dataDir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: no device directory in %s", budget.ErrNotFound, dataDir)
}

// DocumentPath returns the path of Budget.yfull.
func (b *BudgetDir) DocumentPath() (string, error) {
	dataPath, err := b.DataPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataPath, DocumentFile), nil
}

// Load reads Budget.yfull and builds the repository.
func (b *BudgetDir) Load() (*budget.Repository, error) {
	docPath, err := b.DocumentPath()
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := b.decode(docPath, &doc); err != nil {
		return nil, err
	}
	repo, err := budget.New(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", docPath, err)
	}
	b.logger.Info("loaded budget",
		"path", docPath,
		"master_categories", len(repo.MasterCategories()),
		"monthly_budgets", len(repo.MonthlyBudgets()),
		"transactions", len(repo.Transactions()))
	return repo, nil
}

func (b *BudgetDir) decode(path string, v any) error {
	f, err := b.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", budget.ErrNotFound, path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", budget.ErrInvalidDocument, path, err)
	}
	return nil
}

// escapeGlob quotes the pattern characters of a budget name so that it is
// matched literally.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
