package repo

import (
	"context"
	"errors"

	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	sdom "shulzmanim/internal/services/shuls/domain"

	"github.com/google/uuid"
)

const textCols = `id, shul_id, internal_name, display_name, text_type, text_content, font_size, font_color, description, created_at, updated_at`

func scanText(r store.Row) (sdom.CustomText, error) {
	var t sdom.CustomText
	err := r.Scan(
		&t.ID,
		&t.ShulID,
		&t.InternalName,
		&t.DisplayName,
		&t.TextType,
		&t.TextContent,
		&t.FontSize,
		&t.FontColor,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *queries) ListTexts(ctx context.Context, shulID uuid.UUID) ([]sdom.CustomText, error) {
	out, err := store.Many(ctx, r.q, scanText,
		`SELECT `+textCols+` FROM custom_texts WHERE shul_id = $1 ORDER BY display_name`, shulID)
	return out, perr.FromPostgres(err, "list custom texts")
}

func (r *queries) InsertText(ctx context.Context, t sdom.CustomText) (sdom.CustomText, error) {
	out, err := store.One(ctx, r.q, scanText, `
INSERT INTO custom_texts (id, shul_id, internal_name, display_name, text_type, text_content, font_size, font_color, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+textCols,
		t.ID, t.ShulID, t.InternalName, t.DisplayName, t.TextType, t.TextContent, t.FontSize, t.FontColor, t.Description)
	if err != nil {
		return out, perr.AttachFieldFromPg(perr.FromPostgres(err, "insert custom text"))
	}
	return out, nil
}

func (r *queries) DeleteText(ctx context.Context, shulID uuid.UUID, internalName string) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM custom_texts WHERE shul_id = $1 AND internal_name = $2`, shulID, internalName)
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("custom text %q not found", internalName)
	}
	return perr.FromPostgres(err, "delete custom text")
}
