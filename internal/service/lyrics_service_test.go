package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lirik/internal/model"
	"lirik/internal/repository/mock"
	"lirik/internal/service"
)

type stubSearchService struct {
	results []model.SearchResult
	err     error
}

func (s *stubSearchService) Search(ctx context.Context, title, artist string) ([]model.SearchResult, error) {
	return s.results, s.err
}

type stubExtractService struct {
	page *service.ExtractedPage
	err  error
}

func (s *stubExtractService) ExtractPage(ctx context.Context, pageURL string) (*service.ExtractedPage, error) {
	return s.page, s.err
}

const rawChordSheet = "[Intro]\nC  G  Am  F\n\nWalking down the empty street tonight\nThinking of the words I never said\n\nWalking down the empty street tonight\nThinking of the words I never said"

const cleanedChordSheet = "Walking down the empty street tonight\nThinking of the words I never said"

func TestLyricsService_Create_CleansLyrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	mockSongs.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, song model.Song) (model.Song, error) {
			require.Equal(t, "Empty Street", song.Title)
			require.Equal(t, cleanedChordSheet, song.Lyrics)
			require.NotEmpty(t, song.ShareToken)
			require.Equal(t, "en", song.Language)
			song.ID = 42
			return song, nil
		})

	song, err := svc.Create(ctx, service.SongInput{
		Title:  "Empty Street",
		Lyrics: rawChordSheet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), song.ID)
}

func TestLyricsService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	_, err := svc.Create(ctx, service.SongInput{Title: "  ", Lyrics: "some lyrics"})
	require.ErrorIs(t, err, service.ErrInvalid)

	// Lyrics that clean down to nothing are rejected
	_, err = svc.Create(ctx, service.SongInput{Title: "Title", Lyrics: "[Intro]\nC G Am F"})
	require.ErrorIs(t, err, service.ErrNoLyrics)
}

func TestLyricsService_Create_DetectsIndonesian(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	mockSongs.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, song model.Song) (model.Song, error) {
			require.Equal(t, "id", song.Language)
			return song, nil
		})

	_, err := svc.Create(ctx, service.SongInput{
		Title:  "Kisah Kasih",
		Lyrics: "aku mencintaimu sepenuh hati\nkamu yang selalu ada di sini\ncinta ini tak akan pernah mati",
	})
	require.NoError(t, err)
}

func TestLyricsService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	extract := &stubExtractService{
		page: &service.ExtractedPage{
			Title: "Empty Street - SomeBand",
			Text:  rawChordSheet,
		},
	}
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, extract)

	preview, err := svc.Preview(context.Background(), "https://lyrics.example.com/empty-street")
	require.NoError(t, err)
	require.Equal(t, "Empty Street - SomeBand", preview.Title)
	require.Equal(t, cleanedChordSheet, preview.Lyrics)
	require.Equal(t, "en", preview.Language)
}

func TestLyricsService_Preview_NoLyrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	extract := &stubExtractService{
		page: &service.ExtractedPage{Title: "Nothing Here", Text: "[Intro]\n[Outro]"},
	}
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, extract)

	_, err := svc.Preview(context.Background(), "https://lyrics.example.com/nothing")
	require.ErrorIs(t, err, service.ErrNoLyrics)
}

func TestLyricsService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	mockSongs.EXPECT().GetByID(ctx, int64(999)).Return(model.Song{}, sql.ErrNoRows)

	_, err := svc.Get(ctx, 999)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestLyricsService_GetByShareToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	_, err := svc.GetByShareToken(ctx, "  ")
	require.ErrorIs(t, err, service.ErrInvalid)

	mockSongs.EXPECT().GetByShareToken(ctx, "tok-123").Return(model.Song{ID: 7, Title: "Song"}, nil)
	song, err := svc.GetByShareToken(ctx, "tok-123")
	require.NoError(t, err)
	require.Equal(t, int64(7), song.ID)

	mockSongs.EXPECT().GetByShareToken(ctx, "missing").Return(model.Song{}, sql.ErrNoRows)
	_, err = svc.GetByShareToken(ctx, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestLyricsService_Update_RecleansAndKeepsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	existing := model.Song{ID: 42, Title: "Old Title", Lyrics: "old lyrics", Language: "en", ShareToken: "tok-42"}
	mockSongs.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil)
	mockSongs.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, song model.Song) (model.Song, error) {
			require.Equal(t, "New Title", song.Title)
			require.Equal(t, cleanedChordSheet, song.Lyrics)
			require.Equal(t, "tok-42", song.ShareToken)
			return song, nil
		})

	updated, err := svc.Update(ctx, 42, service.SongInput{
		Title:  "New Title",
		Lyrics: rawChordSheet,
	})
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.Title)
}

func TestLyricsService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSongs := mock.NewMockSongRepository(ctrl)
	svc := service.NewLyricsService(mockSongs, &stubSearchService{}, &stubExtractService{})
	ctx := context.Background()

	mockSongs.EXPECT().Delete(ctx, int64(999)).Return(sql.ErrNoRows)

	err := svc.Delete(ctx, 999)
	require.ErrorIs(t, err, service.ErrNotFound)
}
