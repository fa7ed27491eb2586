package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/3liantte/grocery-list-app/internal/backup"
	"github.com/3liantte/grocery-list-app/internal/store"
)

const (
	passphraseHeader = "X-Backup-Passphrase"
	maxImportSize    = 16 << 20 // encrypted snapshots are small; cap uploads anyway
)

type BackupHandler struct {
	store  *store.GroceryStore
	logger *slog.Logger
}

func NewBackupHandler(s *store.GroceryStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{store: s, logger: logger}
}

// Export returns the current snapshot encrypted under the passphrase from the
// X-Backup-Passphrase header.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	passphrase := r.Header.Get(passphraseHeader)
	if passphrase == "" {
		writeError(w, http.StatusBadRequest, "passphrase is required")
		return
	}

	snap, err := h.store.Snapshot()
	if err != nil {
		h.logger.Error("export: snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export")
		return
	}

	enc, err := backup.Encrypt(snap, passphrase)
	if err != nil {
		h.logger.Error("export: encrypt", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="grocery-backup.enc"`)
	w.Write(enc)
}

// Import decrypts the uploaded payload and replaces the entire store state
// with it.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	passphrase := r.Header.Get(passphraseHeader)
	if passphrase == "" {
		writeError(w, http.StatusBadRequest, "passphrase is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	snap, err := backup.Decrypt(data, passphrase)
	if err != nil {
		writeError(w, http.StatusBadRequest, "wrong passphrase or corrupt backup")
		return
	}

	if err := h.store.Restore(snap); err != nil {
		writeStoreError(w, h.logger, "import backup", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"items":     len(h.store.Items()),
		"templates": len(h.store.TemplateLists()),
	})
}
