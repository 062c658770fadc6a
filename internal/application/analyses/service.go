package analyses

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/i32sevit/analiza-tu-pc/internal/application"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/advice"
	domain "github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

// Service implements the analysis pipeline use-cases.
// Stateless apart from its collaborators; safe for concurrent use.
type Service struct {
	Repo      domain.Repository
	Artifacts domain.ArtifactStore // nil when external storage is not configured
	Synth     domain.Synthesizer
	Engine    *scoring.Engine
	Advisor   advice.Client // nil when no AI advisor is configured
	Clock     application.Clock
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnalyzeCommand carries one validated submission. Empty Owner means a
// guest submission: scored and published, never persisted.
type AnalyzeCommand struct {
	Owner string
	Input hardware.Input
}

type AnalyzeResult struct {
	Status     string            `json:"status"`
	AnalysisID domain.AnalysisID `json:"analysis_id"`
	PDFURL     *string           `json:"pdf_url"`
	JSONURL    *string           `json:"json_url"`
	Result     scoring.Result    `json:"result"`
	Advice     string            `json:"advice,omitempty"`
	IsGuest    bool              `json:"is_guest"`
}

// Analyze runs the full pipeline: score, allocate the identifier,
// synthesize the two artifacts, publish them (best effort), persist
// the record for registered owners.
//
// The identifier is reserved before any network I/O so the per-owner
// critical section never waits on synthesis or publication.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	hw := cmd.Input.Normalize()
	res := s.Engine.Score(hw)
	isGuest := cmd.Owner == ""

	out := AnalyzeResult{Status: StatusError, Result: res, IsGuest: isGuest}

	var id domain.AnalysisID
	if isGuest {
		// collisions between concurrent guests are tolerated: the id only
		// names the ephemeral artifacts, which upload with overwrite
		id = domain.AnalysisID(s.Clock.Now().Unix())
	} else {
		var err error
		id, err = s.Repo.ReserveID(ctx, cmd.Owner)
		if err != nil {
			return out, fmt.Errorf("reserve analysis id: %w", err)
		}
	}
	out.AnalysisID = id

	out.Advice = s.adviceText(ctx, hw, res)

	now := s.Clock.Now()
	artifacts, err := s.Synth.Synthesize(hw, res, id, now, out.Advice)
	if err != nil {
		return out, fmt.Errorf("synthesize report: %w", err)
	}

	pdfKey := objectKey(cmd.Owner, id, ".pdf")
	jsonKey := objectKey(cmd.Owner, id, ".json")
	out.PDFURL = s.publishOne(ctx, pdfKey, artifacts.PDF, "application/pdf")
	out.JSONURL = s.publishOne(ctx, jsonKey, artifacts.JSON, "application/json")

	if !isGuest {
		rec := &domain.Analysis{
			ID:          id,
			Owner:       cmd.Owner,
			Hardware:    hw,
			MainProfile: res.MainProfile,
			MainScore:   res.MainScore,
			PDFURL:      out.PDFURL,
			JSONURL:     out.JSONURL,
			CreatedAt:   now,
		}
		if err := s.Repo.Save(ctx, rec); err != nil {
			return out, fmt.Errorf("persist analysis: %w", err)
		}
	}

	out.Status = StatusSuccess
	return out, nil
}

// adviceText is best effort: a failing or missing advisor never fails
// the analysis.
func (s *Service) adviceText(ctx context.Context, hw hardware.Description, res scoring.Result) string {
	if s.Advisor == nil {
		return ""
	}
	text, err := s.Advisor.Recommend(ctx, hw, res)
	if err != nil {
		log.Printf("advisor failed: %v", err)
		return ""
	}
	return text
}

// publishOne uploads one artifact and resolves its share link. Every
// failure is soft: logged, URL nil, pipeline continues.
func (s *Service) publishOne(ctx context.Context, key string, data []byte, contentType string) *string {
	if s.Artifacts == nil {
		return nil
	}
	if err := s.Artifacts.Upload(ctx, key, data, contentType); err != nil {
		log.Printf("artifact upload failed key=%s: %v", key, err)
		return nil
	}
	url, outcome, err := s.Artifacts.ShareLink(ctx, key)
	if err != nil || outcome == domain.LinkFailed {
		log.Printf("share link failed key=%s: %v", key, err)
		return nil
	}
	return &url
}

// objectKey scopes artifact paths per owner so two owners' identical
// ids cannot clobber each other; guests share one namespace.
func objectKey(owner string, id domain.AnalysisID, ext string) string {
	if owner == "" {
		owner = "guest"
	}
	return fmt.Sprintf("reports/%s/report_%d%s", owner, id, ext)
}

// Get one owned record; foreign ids surface as not found.
func (s *Service) Get(ctx context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, owner, id)
}

// History lists the owner's records newest-first with classic
// page/pageSize pagination.
func (s *Service) History(ctx context.Context, owner string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	records, total, err := s.Repo.List(ctx, owner, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	return domain.PaginatedResult{
		Data:       records,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Delete removes one owned record by identifier.
func (s *Service) Delete(ctx context.Context, owner string, id domain.AnalysisID) (bool, error) {
	return s.Repo.Delete(ctx, owner, id)
}

// Stats aggregates the owner's records live.
func (s *Service) Stats(ctx context.Context, owner string) (*domain.Stats, error) {
	return s.Repo.Stats(ctx, owner)
}

// GlobalStats aggregates across all owners.
func (s *Service) GlobalStats(ctx context.Context) (*domain.Stats, error) {
	return s.Repo.Stats(ctx, "")
}
