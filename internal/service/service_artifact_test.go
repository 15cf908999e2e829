package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/mock"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newArtifactSvc(t *testing.T) (ArtifactService, *mock.MockFileStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileStorage(ctrl)
	return NewArtifactService(files, nil, logger.Nop()), files
}

func TestArtifactService_DeleteAllContinuesAfterFailure(t *testing.T) {
	svc, files := newArtifactSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		files.EXPECT().Delete(ctx, "a").Return(nil),
		files.EXPECT().Delete(ctx, "b").Return(errors.New("permission denied")),
		files.EXPECT().Delete(ctx, "c").Return(nil),
	)

	report := svc.DeleteAll(ctx, []string{"a", "b", "c"})

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	if assert.Len(t, report.Outcomes, 3) {
		assert.Equal(t, models.ArtifactDeleted, report.Outcomes[0].Status)
		assert.Equal(t, models.ArtifactFailed, report.Outcomes[1].Status)
		assert.Contains(t, report.Outcomes[1].Error, "permission denied")
		assert.Equal(t, models.ArtifactDeleted, report.Outcomes[2].Status)
	}
}

func TestArtifactService_ExternalRefsAreNotTouched(t *testing.T) {
	// No expectations on files: any Delete call fails the test.
	svc, _ := newArtifactSvc(t)

	report := svc.DeleteAll(context.Background(), []string{
		"https://cdn.example.com/a.png",
		"//cdn.example.com/b.png",
		"s3://bucket/c.png",
	})

	assert.Equal(t, 3, report.Succeeded)
	for _, o := range report.Outcomes {
		assert.Equal(t, models.ArtifactExternal, o.Status, o.Ref)
	}
}

func TestArtifactService_Replace(t *testing.T) {
	svc, files := newArtifactSvc(t)
	ctx := context.Background()

	assert.Equal(t, models.ArtifactSkipped, svc.Replace(ctx, "", "photos/new.png").Status)
	assert.Equal(t, models.ArtifactSkipped, svc.Replace(ctx, "photos/same.png", "photos/same.png").Status)

	files.EXPECT().Delete(ctx, "photos/old.png").Return(nil)
	assert.Equal(t, models.ArtifactDeleted, svc.Replace(ctx, "photos/old.png", "photos/new.png").Status)
}

func TestArtifactService_DeleteFailureIsReportedNotReturned(t *testing.T) {
	svc, files := newArtifactSvc(t)
	ctx := context.Background()

	files.EXPECT().Delete(ctx, "photos/old.png").Return(errors.New("io error"))

	outcome := svc.Replace(ctx, "photos/old.png", "")

	assert.Equal(t, models.ArtifactFailed, outcome.Status)
	assert.Contains(t, outcome.Error, ErrArtifactDeletionFailed.Error())
}

func TestIsExternalRef(t *testing.T) {
	assert.True(t, isExternalRef("http://example.com/x.png"))
	assert.True(t, isExternalRef("//example.com/x.png"))
	assert.False(t, isExternalRef("photos/x.png"))
	assert.False(t, isExternalRef("/uploads/x.png"))
	assert.False(t, isExternalRef("file:///etc/passwd"))
}
