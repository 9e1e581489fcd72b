package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
)

type CatalogService struct {
	Repo   repo.Repository
	Events events.Publisher
}

func (s *CatalogService) ListBooks(ctx context.Context, f repo.BookFilter) ([]models.Book, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return []models.Book{}, nil
	}
	return s.Repo.ListBooks(ctx, f)
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	b, err := s.Repo.GetBook(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return b, err
}

func validateBook(b *models.Book) error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return invalid("Title is required")
	case strings.TrimSpace(b.Author) == "":
		return invalid("Author is required")
	case strings.TrimSpace(b.Description) == "":
		return invalid("Description is required")
	case strings.TrimSpace(b.ImageURL) == "":
		return invalid("Image URL is required")
	case b.Price < 0 || math.IsNaN(b.Price) || math.IsInf(b.Price, 0):
		return invalid("Price must be a non-negative number")
	case !b.Condition.Valid():
		return invalid("Invalid condition %q", b.Condition)
	case !b.Format.Valid():
		return invalid("Invalid format %q", b.Format)
	case !b.Category.Valid():
		return invalid("Invalid category %q", b.Category)
	}
	return nil
}

func (s *CatalogService) CreateBook(ctx context.Context, sellerID uint, req transport.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:            strings.TrimSpace(req.Title),
		Author:           strings.TrimSpace(req.Author),
		Description:      req.Description,
		Price:            req.Price,
		Condition:        req.Condition,
		Format:           req.Format,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		SellerID:         sellerID,
		InStock:          true,
	}
	if req.InStock != nil {
		book.InStock = *req.InStock
	}
	if err := validateBook(book); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicBooks, events.Event{Type: events.BookCreated, EntityID: book.ID, UserID: sellerID, Data: book})
	return book, nil
}

// ownedBook loads a book and checks that actorID is its seller.
func ownedBook(ctx context.Context, r repo.Repository, actorID, id uint) (*models.Book, error) {
	book, err := r.GetBook(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if book.SellerID != actorID {
		return nil, fmt.Errorf("book %d belongs to seller %d: %w", id, book.SellerID, ErrForbidden)
	}
	return book, nil
}

func applyPatch(b *models.Book, req transport.PatchBookRequest) {
	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		b.Author = strings.TrimSpace(*req.Author)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.Condition != nil {
		b.Condition = *req.Condition
	}
	if req.Format != nil {
		b.Format = *req.Format
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
	}
	if req.AdditionalImages != nil {
		b.AdditionalImages = *req.AdditionalImages
	}
	if req.InStock != nil {
		b.InStock = *req.InStock
	}
}

func (s *CatalogService) UpdateBook(ctx context.Context, actorID, id uint, req transport.PatchBookRequest) (*models.Book, error) {
	var book *models.Book
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		b, err := ownedBook(ctx, tx, actorID, id)
		if err != nil {
			return err
		}
		applyPatch(b, req)
		if err := validateBook(b); err != nil {
			return err
		}
		if err := tx.SaveBook(ctx, b); err != nil {
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicBooks, events.Event{Type: events.BookUpdated, EntityID: book.ID, UserID: actorID, Data: book})
	return book, nil
}

// DeleteBook leaves order items that reference the book untouched.
func (s *CatalogService) DeleteBook(ctx context.Context, actorID, id uint) error {
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		if _, err := ownedBook(ctx, tx, actorID, id); err != nil {
			return err
		}
		deleted, err := tx.DeleteBook(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicBooks, events.Event{Type: events.BookDeleted, EntityID: id, UserID: actorID})
	return nil
}

func (s *CatalogService) Attributes() transport.AttributesResponse {
	return transport.AttributesResponse{
		Categories: models.Categories(),
		Conditions: models.Conditions(),
		Formats:    models.Formats(),
	}
}
