package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

func setupTestLedger(t *testing.T) *SQLiteSaveRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	repo, err := NewSQLiteSaveRepository(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func testAsset(platform domain.Platform, quality string) *domain.SavedAsset {
	return domain.NewSavedAsset(platform, domain.KindVideo, quality,
		"/api/"+string(platform)+"/download/x/video",
		string(platform)+"_video_"+quality+".mp4",
		"/tmp/"+string(platform)+"_video_"+quality+".mp4",
		1024)
}

func TestLedger_CreateAndFind(t *testing.T) {
	repo := setupTestLedger(t)

	asset := testAsset(domain.PlatformYouTube, "720p")
	require.NoError(t, repo.Create(asset))

	found, err := repo.FindByID(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.FileName, found.FileName)
	assert.Equal(t, domain.KindVideo, found.ContentKind)
	assert.Equal(t, int64(1024), found.SizeBytes)
}

func TestLedger_FindByID_NotFound(t *testing.T) {
	repo := setupTestLedger(t)

	_, err := repo.FindByID("does-not-exist")
	assert.Error(t, err)
}

func TestLedger_FindAllWithFilters(t *testing.T) {
	repo := setupTestLedger(t)

	require.NoError(t, repo.Create(testAsset(domain.PlatformYouTube, "720p")))
	require.NoError(t, repo.Create(testAsset(domain.PlatformYouTube, "1080p")))
	require.NoError(t, repo.Create(testAsset(domain.PlatformFacebook, "480p")))

	all, err := repo.FindAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	youtube, err := repo.FindAll(map[string]interface{}{"platform": "youtube"})
	require.NoError(t, err)
	assert.Len(t, youtube, 2)
}

func TestLedger_Delete(t *testing.T) {
	repo := setupTestLedger(t)

	asset := testAsset(domain.PlatformInstagram, "720p")
	require.NoError(t, repo.Create(asset))
	require.NoError(t, repo.Delete(asset.ID))

	_, err := repo.FindByID(asset.ID)
	assert.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLedger_Count(t *testing.T) {
	repo := setupTestLedger(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Create(testAsset(domain.PlatformYouTube, "720p")))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
