package advice

import (
	"context"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

type Client interface {
	Recommend(ctx context.Context, hw hardware.Description, res scoring.Result) (string, error)
}
