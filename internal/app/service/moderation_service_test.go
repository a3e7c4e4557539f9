package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

func TestIsBlockedLeeFresco(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	svc := NewModerationService(repo, "bot-1")

	assert.False(t, svc.IsBlocked(ctx, "SuperSpammer99"))

	// un peer agrega el término; se ve en la próxima evaluación
	require.NoError(t, repo.Add(ctx, "spam", storage.KindBlacklist, "bot-2"))
	assert.True(t, svc.IsBlocked(ctx, "SuperSpammer99"))
}

func TestIsBlockedWhitelistGana(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	require.NoError(t, repo.Add(ctx, "spam", storage.KindBlacklist, "bot-1"))
	require.NoError(t, repo.Add(ctx, "spammer", storage.KindWhitelist, "bot-1"))

	svc := NewModerationService(repo, "bot-1")
	assert.False(t, svc.IsBlocked(ctx, "SuperSpammer99"))
	assert.True(t, svc.IsBlocked(ctx, "spam_account"), "sin match de whitelist sigue bloqueado")
}

func TestIsBlockedUsaCacheConStoreCaido(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	require.NoError(t, repo.Add(ctx, "spam", storage.KindBlacklist, "bot-1"))

	svc := NewModerationService(repo, "bot-1")
	require.True(t, svc.IsBlocked(ctx, "spammy"), "lectura buena siembra la cache")

	repo.setErr(storage.ErrStoreUnavailable)
	assert.True(t, svc.IsBlocked(ctx, "spammy"), "con store caído decide con el último set bueno")
	assert.False(t, svc.IsBlocked(ctx, "Carlos"))
}

func TestIsBlockedSinStoreNiCache(t *testing.T) {
	repo := &fakeTermRepo{err: storage.ErrStoreUnavailable}
	svc := NewModerationService(repo, "bot-1")

	// nunca hubo lectura buena: set vacío, nadie bloqueado, sin crash
	assert.False(t, svc.IsBlocked(context.Background(), "SuperSpammer99"))
}

func TestBanNormalizaYComparte(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	svc := NewModerationService(repo, "bot-1")

	msg, err := svc.Ban(ctx, "  SPAM ", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "✅")

	terms, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "spam", terms[0].Term)
	assert.Equal(t, storage.KindBlacklist, terms[0].Kind, "sin lista explícita va a blacklist")
	assert.Equal(t, "bot-1", terms[0].AddedBy)
}

func TestBanTerminoVacioRechazado(t *testing.T) {
	repo := &fakeTermRepo{}
	svc := NewModerationService(repo, "bot-1")

	msg, err := svc.Ban(context.Background(), "   ", "blacklist")
	require.NoError(t, err)
	assert.Contains(t, msg, "❌")

	terms, _ := repo.ListAll(context.Background())
	assert.Empty(t, terms)
}

func TestBanConStoreCaidoQuedaLocal(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{err: storage.ErrStoreUnavailable}
	svc := NewModerationService(repo, "bot-1")

	msg, err := svc.Ban(ctx, "spam", "blacklist")
	require.NoError(t, err, "la edición degradada no es un error para el caller")
	assert.Contains(t, msg, "⚠️", "avisa que el cambio no se compartió")

	// el término local igual bloquea en este lounge
	assert.True(t, svc.IsBlocked(ctx, "SuperSpammer99"))
}

// Con el store caído, un join evaluando IsBlocked y un admin editando
// términos corren en goroutines distintas (discordgo lanza una por
// handler): la cache degradada tiene que bancar ambas a la vez.
func TestCacheDegradadaSoportaLecturasYEdicionesConcurrentes(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	require.NoError(t, repo.Add(ctx, "spam", storage.KindBlacklist, "bot-1"))
	require.NoError(t, repo.Add(ctx, "bot", storage.KindBlacklist, "bot-1"))

	svc := NewModerationService(repo, "bot-1")
	require.True(t, svc.IsBlocked(ctx, "spammy"), "lectura buena siembra la cache")
	repo.setErr(storage.ErrStoreUnavailable)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = svc.IsBlocked(ctx, "SuperSpammer99")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = svc.Unban(ctx, "bot", "blacklist")
			_, _ = svc.Ban(ctx, "bot", "blacklist")
		}
	}()
	wg.Wait()

	assert.True(t, svc.IsBlocked(ctx, "spammy"), "spam nunca salió de la cache local")
}

func TestUnbanInexistenteEsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	svc := NewModerationService(repo, "bot-1")

	msg, err := svc.Unban(ctx, "spam", "blacklist")
	require.NoError(t, err)
	assert.Contains(t, msg, "ℹ️")
}

func TestUnbanSacaDeCacheYStore(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	svc := NewModerationService(repo, "bot-1")

	_, err := svc.Ban(ctx, "spam", "blacklist")
	require.NoError(t, err)
	require.True(t, svc.IsBlocked(ctx, "spammy"))

	msg, err := svc.Unban(ctx, "spam", "blacklist")
	require.NoError(t, err)
	assert.Contains(t, msg, "✅")
	assert.False(t, svc.IsBlocked(ctx, "spammy"))
}

func TestTermListMuestraAmbasListas(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTermRepo{}
	require.NoError(t, repo.Add(ctx, "spam", storage.KindBlacklist, "bot-1"))
	require.NoError(t, repo.Add(ctx, "vip", storage.KindWhitelist, "bot-1"))

	svc := NewModerationService(repo, "bot-1")
	out := svc.TermList(ctx)
	assert.Contains(t, out, "`spam`")
	assert.Contains(t, out, "`vip`")
}
