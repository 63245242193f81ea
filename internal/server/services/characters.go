package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/repomanager"
)

// CharacterView is the outward shape of a character.
type CharacterView struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	HitPoints    int             `json:"hit_points"`
	Strength     int             `json:"strength"`
	Defense      int             `json:"defense"`
	Intelligence int             `json:"intelligence"`
	Class        models.RPGClass `json:"class"`
	UserID       *int64          `json:"user_id,omitempty"`
	PortraitKey  string          `json:"portrait_key,omitempty"`
}

// AddCharacterRequest describes a new character. Zero-valued fields take
// the character defaults.
type AddCharacterRequest struct {
	Name         string          `json:"name"`
	HitPoints    int             `json:"hit_points"`
	Strength     int             `json:"strength"`
	Defense      int             `json:"defense"`
	Intelligence int             `json:"intelligence"`
	Class        models.RPGClass `json:"class"`
	UserID       *int64          `json:"user_id,omitempty"`
}

// UpdateCharacterRequest overwrites every editable field of character ID.
type UpdateCharacterRequest struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	HitPoints    int             `json:"hit_points"`
	Strength     int             `json:"strength"`
	Defense      int             `json:"defense"`
	Intelligence int             `json:"intelligence"`
	Class        models.RPGClass `json:"class"`
}

// PortraitURL pairs an object key with a presigned URL for it.
type PortraitURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func toView(c *models.Character) CharacterView {
	return CharacterView{
		ID:           c.ID,
		Name:         c.Name,
		HitPoints:    c.HitPoints,
		Strength:     c.Strength,
		Defense:      c.Defense,
		Intelligence: c.Intelligence,
		Class:        c.Class,
		UserID:       c.UserID,
		PortraitKey:  c.PortraitKey,
	}
}

func toViews(list []*models.Character) []CharacterView {
	views := make([]CharacterView, 0, len(list))
	for _, c := range list {
		views = append(views, toView(c))
	}
	return views
}

// CharacterService is CRUD over character records plus portrait upload URLs.
type CharacterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	portraits   PortraitStore
	logger      logging.Logger
}

func NewCharacterService(db *sql.DB, m repomanager.RepositoryManager, portraits PortraitStore, logger logging.Logger) *CharacterService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &CharacterService{
		db:          db,
		repomanager: m,
		portraits:   portraits,
		logger:      logger.With("module", "characters"),
	}
}

// AddCharacter stores a new character and returns the full list afterwards.
func (s *CharacterService) AddCharacter(ctx context.Context, req AddCharacterRequest) (*ServiceResult[[]CharacterView], error) {
	if !req.Class.Valid() {
		return nil, fmt.Errorf("invalid class %d", int(req.Class))
	}

	c := &models.Character{
		Name:         req.Name,
		HitPoints:    req.HitPoints,
		Strength:     req.Strength,
		Defense:      req.Defense,
		Intelligence: req.Intelligence,
		Class:        req.Class,
		UserID:       req.UserID,
	}
	c.ApplyDefaults()

	var list []*models.Character
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Characters(tx)

		created, err := repo.Create(ctx, c)
		if err != nil {
			return fmt.Errorf("error creating character: %w", err)
		}
		s.logger.Debug(ctx, "character created", "character_id", created.ID)

		list, err = repo.List(ctx)
		if err != nil {
			return fmt.Errorf("error listing characters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ok(toViews(list)), nil
}

// GetAllCharacters returns every character.
func (s *CharacterService) GetAllCharacters(ctx context.Context) (*ServiceResult[[]CharacterView], error) {
	list, err := s.repomanager.Characters(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing characters: %w", err)
	}
	return ok(toViews(list)), nil
}

// GetCharacterByID returns one character or a NotFound failure.
func (s *CharacterService) GetCharacterByID(ctx context.Context, id int64) (*ServiceResult[CharacterView], error) {
	c, err := s.repomanager.Characters(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail[CharacterView](OutcomeNotFound, characterNotFoundMessage(id)), nil
		}
		return nil, fmt.Errorf("error getting character: %w", err)
	}
	return ok(toView(c)), nil
}

// UpdateCharacter overwrites the character and returns its stored state.
func (s *CharacterService) UpdateCharacter(ctx context.Context, req UpdateCharacterRequest) (*ServiceResult[CharacterView], error) {
	if !req.Class.Valid() {
		return nil, fmt.Errorf("invalid class %d", int(req.Class))
	}

	var result *ServiceResult[CharacterView]
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Characters(tx)

		err := repo.Update(ctx, &models.Character{
			ID:           req.ID,
			Name:         req.Name,
			HitPoints:    req.HitPoints,
			Strength:     req.Strength,
			Defense:      req.Defense,
			Intelligence: req.Intelligence,
			Class:        req.Class,
		})
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				result = fail[CharacterView](OutcomeNotFound, characterNotFoundMessage(req.ID))
				return nil
			}
			return fmt.Errorf("error updating character: %w", err)
		}

		c, err := repo.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("error getting character: %w", err)
		}
		result = ok(toView(c))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCharacter removes the character and returns the remaining list.
func (s *CharacterService) DeleteCharacter(ctx context.Context, id int64) (*ServiceResult[[]CharacterView], error) {
	var result *ServiceResult[[]CharacterView]
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Characters(tx)

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				result = fail[[]CharacterView](OutcomeNotFound, characterNotFoundMessage(id))
				return nil
			}
			return fmt.Errorf("error deleting character: %w", err)
		}

		list, err := repo.List(ctx)
		if err != nil {
			return fmt.Errorf("error listing characters: %w", err)
		}
		result = ok(toViews(list))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.logger.Info(ctx, "character deleted", "character_id", id)
	}
	return result, nil
}

// GetPortraitUploadURL assigns a new portrait key to the character and
// returns a presigned PUT URL for it.
func (s *CharacterService) GetPortraitUploadURL(ctx context.Context, id int64) (*ServiceResult[PortraitURL], error) {
	repo := s.repomanager.Characters(s.db)
	if _, err := repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail[PortraitURL](OutcomeNotFound, characterNotFoundMessage(id)), nil
		}
		return nil, fmt.Errorf("error getting character: %w", err)
	}

	// the stored key is replaced only after the new one has an upload URL
	key := NewPortraitKey()
	url, err := s.portraits.PresignPut(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "character_id", id, "error", err)
		return nil, err
	}

	err = repo.SetPortraitKey(ctx, id, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail[PortraitURL](OutcomeNotFound, characterNotFoundMessage(id)), nil
		}
		return nil, fmt.Errorf("error setting portrait key: %w", err)
	}

	return ok(PortraitURL{Key: key, URL: url}), nil
}

// GetPortraitDownloadURL returns a presigned GET URL for the character's
// portrait. A character without a portrait is reported as NotFound.
func (s *CharacterService) GetPortraitDownloadURL(ctx context.Context, id int64) (*ServiceResult[PortraitURL], error) {
	c, err := s.repomanager.Characters(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail[PortraitURL](OutcomeNotFound, characterNotFoundMessage(id)), nil
		}
		return nil, fmt.Errorf("error getting character: %w", err)
	}
	if c.PortraitKey == "" {
		return fail[PortraitURL](OutcomeNotFound, fmt.Sprintf("Character with Id '%d' has no portrait", id)), nil
	}

	url, err := s.portraits.PresignGet(ctx, c.PortraitKey)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "character_id", id, "error", err)
		return nil, err
	}

	return ok(PortraitURL{Key: c.PortraitKey, URL: url}), nil
}
