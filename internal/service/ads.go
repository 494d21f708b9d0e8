package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"asre_hazir/internal/domain"
)

// Ad placement slots the portal renders.
const (
	PlacementHeader      = "header"
	PlacementBetweenNews = "between_news"
)

// AdsService manages advertisements with the same media semantics as
// articles: creative required on create, partial success on update,
// best-effort media cleanup on delete.
type AdsService struct {
	ads    AdStore
	media  MediaStore
	logger *slog.Logger
}

func NewAdsService(ads AdStore, media MediaStore, logger *slog.Logger) *AdsService {
	return &AdsService{
		ads:    ads,
		media:  media,
		logger: logger,
	}
}

func (s *AdsService) Create(ctx context.Context, session domain.Session, placement, link string, media *domain.MediaUpload) (*domain.Advertisement, error) {
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if media == nil {
		return nil, domain.ErrImageRequired
	}

	imageURL, err := s.media.Upload(ctx, *media)
	if err != nil {
		return nil, fmt.Errorf("upload creative: %w", err)
	}

	ad := &domain.Advertisement{
		Placement: placement,
		ImageURL:  imageURL,
		Link:      link,
	}

	created, err := s.ads.Insert(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("insert advertisement: %w", err)
	}

	s.logger.Info("advertisement created", "id", created.ID, "placement", placement)

	return created, nil
}

func (s *AdsService) Update(ctx context.Context, session domain.Session, id, placement, link string, media *domain.MediaUpload) (*domain.Advertisement, error) {
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}

	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load advertisement: %w", err)
	}

	if media != nil {
		imageURL, err := s.media.Upload(ctx, *media)
		if err != nil {
			s.logger.Error("creative upload failed, updating remaining fields", "id", id, "error", err)
		} else {
			ad.ImageURL = imageURL
		}
	}

	if placement != "" {
		ad.Placement = placement
	}
	if link != "" {
		ad.Link = link
	}

	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("update advertisement: %w", err)
	}

	return ad, nil
}

func (s *AdsService) Delete(ctx context.Context, session domain.Session, id string) error {
	if !session.IsAdmin {
		return domain.ErrForbidden
	}

	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load advertisement: %w", err)
	}

	if err := s.ads.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete advertisement: %w", err)
	}

	if ad.ImageURL != "" && !strings.Contains(ad.ImageURL, "placeholder") {
		if err := s.media.Delete(ctx, ad.ImageURL); err != nil {
			s.logger.Error("creative cleanup failed", "id", id, "error", err)
		}
	}

	return nil
}

func (s *AdsService) List(ctx context.Context) ([]domain.Advertisement, error) {
	return s.ads.List(ctx)
}

func (s *AdsService) ListByPlacement(ctx context.Context, placement string) ([]domain.Advertisement, error) {
	return s.ads.ListByPlacement(ctx, placement)
}
