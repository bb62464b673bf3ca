package bot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"stolik/internal/audit"
	"stolik/internal/db"
)

const exportActionLimit = 200

// handleExport builds an xlsx snapshot of all branches, their weekly
// schedules and the recent operator actions, and sends it as a document.
func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	l := zerolog.Ctx(ctx)

	if err := b.svc.FetchBranches(ctx); err != nil {
		b.reply(chatID, b.svc.LastError())
		return
	}

	var actions []db.AuditAction
	if b.db != nil {
		var err error
		actions, err = b.db.RecentActions(ctx, exportActionLimit)
		if err != nil {
			l.Warn().Err(err).Msg("loading recent actions for export")
		}
	}

	w := audit.NewExcelizeWriter()
	defer w.Close()
	if err := audit.BuildReport(b.svc.Store().Branches(), actions, w); err != nil {
		l.Error().Err(err).Msg("building export report")
		b.reply(chatID, "Failed to build the export file.")
		return
	}

	path := filepath.Join(b.exportDir, fmt.Sprintf("branches-%s.xlsx", time.Now().Format("2006-01-02-150405")))
	if err := w.SaveToFile(path); err != nil {
		l.Error().Err(err).Msg("saving export file")
		b.reply(chatID, "Failed to save the export file.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("Branch report, %d branches", len(b.svc.Store().Branches()))
	if _, err := b.tg.Send(doc); err != nil {
		l.Error().Err(err).Str("path", path).Msg("sending export document")
		b.reply(chatID, "Failed to send the export file.")
	}
}
