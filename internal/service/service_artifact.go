package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/samber/oops"
)

// artifactService deletes files that lost their last reference. It must be
// called after the reference change is committed; a crash in between only
// leaves an orphaned file behind.
type artifactService struct {
	files store.FileStorage

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewArtifactService(files store.FileStorage, m *metrics.Metrics, logger *logger.Logger) ArtifactService {
	return &artifactService{
		files:   files,
		metrics: m,
		logger:  logger,
	}
}

func (s *artifactService) Replace(ctx context.Context, oldRef, newRef string) models.ArtifactOutcome {
	if oldRef == "" || oldRef == newRef {
		return models.ArtifactOutcome{Ref: oldRef, Status: models.ArtifactSkipped}
	}
	return s.Delete(ctx, oldRef)
}

// Delete removes the file behind ref. References to other hosts are not
// ours to delete and succeed untouched.
func (s *artifactService) Delete(ctx context.Context, ref string) models.ArtifactOutcome {
	outcome := models.ArtifactOutcome{Ref: ref}

	switch {
	case ref == "":
		outcome.Status = models.ArtifactSkipped
		return outcome
	case isExternalRef(ref):
		outcome.Status = models.ArtifactExternal
		s.metrics.RecordArtifactDeletion(string(outcome.Status))
		return outcome
	}

	if err := s.files.Delete(ctx, ref); err != nil {
		err = oops.
			Code(CodeArtifactDeletionFailed).
			With("ref", ref).
			Wrap(fmt.Errorf("%w: %w", ErrArtifactDeletionFailed, err))
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*artifactService.Delete").Str("ref", ref).Msg("artifact was not deleted")

		outcome.Status = models.ArtifactFailed
		outcome.Error = err.Error()
		s.metrics.RecordArtifactDeletion(string(outcome.Status))
		return outcome
	}

	outcome.Status = models.ArtifactDeleted
	s.metrics.RecordArtifactDeletion(string(outcome.Status))
	return outcome
}

// DeleteAll attempts every ref regardless of earlier failures.
func (s *artifactService) DeleteAll(ctx context.Context, refs []string) models.DeletionReport {
	report := models.DeletionReport{Outcomes: make([]models.ArtifactOutcome, 0, len(refs))}
	for _, ref := range refs {
		report.Add(s.Delete(ctx, ref))
	}

	logger.FromContext(ctx).Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("artifact batch deletion finished")

	return report
}

func isExternalRef(ref string) bool {
	if strings.HasPrefix(ref, "//") {
		return true
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && u.Host != ""
}
