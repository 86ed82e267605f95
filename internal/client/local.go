package client

import (
	"context"
	"errors"

	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/models"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	"github.com/thenoetrevino/quadro/internal/types"
)

// Local runs the board against the project service in-process.
// Service refusals surface as RemoteRejected with the service's message.
type Local struct {
	projects projectservice.Service
}

var _ board.Remote = (*Local)(nil)

// NewLocal wraps a project service
func NewLocal(projects projectservice.Service) *Local {
	return &Local{projects: projects}
}

// FetchAllProjects lists every stored project
func (l *Local) FetchAllProjects(ctx context.Context) ([]models.Project, error) {
	all, err := l.projects.GetAllProjects(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		out = append(out, *p)
	}
	return out, nil
}

// ChangeStatus applies the status change through the service rules
func (l *Local) ChangeStatus(ctx context.Context, id types.ProjectID, target models.Status) (*models.Project, error) {
	p, err := l.projects.ChangeStatus(ctx, id, target)
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return board.Unreachable(err)
	}
	return &board.RemoteError{Kind: board.RemoteRejected, Message: err.Error(), Err: err}
}
