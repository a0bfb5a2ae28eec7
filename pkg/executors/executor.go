package executors

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/ynab4"
)

// Loader opens a named budget under a YNAB root.
type Loader interface {
	Load(root, name string) (*budget.Repository, error)
}

// FSLoader loads budgets from an afero filesystem.
type FSLoader struct {
	Fs     afero.Fs
	Logger *log.Logger
}

func (l FSLoader) Load(root, name string) (*budget.Repository, error) {
	dir, err := ynab4.NewConfigDir(l.Fs, root, l.Logger).Open(name)
	if err != nil {
		return nil, err
	}
	return dir.Load()
}

type Executor struct {
	logger        *log.Logger
	loader        Loader
	defaultFormat string
}

func New(logger *log.Logger, loader Loader, defaultFormat string) *Executor {
	return &Executor{
		logger:        logger,
		loader:        loader,
		defaultFormat: defaultFormat,
	}
}
