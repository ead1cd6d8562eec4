package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryapi/internal/entity"
)

// Catalog manages book intake and search.
type Catalog struct {
	books BookRepository
}

func NewCatalog(books BookRepository) *Catalog {
	return &Catalog{books: books}
}

const (
	maxTitleLen  = 200
	maxAuthorLen = 100
	isbnLen      = 13
)

// AddBook validates a new catalog entry and inserts it with every copy
// available. Checks run in a fixed order and the first failure wins.
func (c *Catalog) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (entity.Book, string, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	switch {
	case title == "":
		return entity.Book{}, "", ErrTitleRequired
	case len(title) > maxTitleLen:
		return entity.Book{}, "", ErrTitleTooLong
	case author == "":
		return entity.Book{}, "", ErrAuthorRequired
	case len(author) > maxAuthorLen:
		return entity.Book{}, "", ErrAuthorTooLong
	case len(isbn) != isbnLen:
		return entity.Book{}, "", ErrInvalidISBN
	case totalCopies <= 0:
		return entity.Book{}, "", ErrInvalidCopies
	}

	_, err := c.books.GetByISBN(ctx, isbn)
	if err == nil {
		return entity.Book{}, "", ErrDuplicateISBN
	}
	if !errors.Is(err, ErrNotFound) {
		return entity.Book{}, "", fmt.Errorf("check existing isbn: %w", err)
	}

	b := entity.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	if err := c.books.Insert(ctx, &b); err != nil {
		return entity.Book{}, "", fmt.Errorf("insert book: %w", err)
	}

	msg := fmt.Sprintf("Book %q has been successfully added to the catalog.", b.Title)
	return b, msg, nil
}

// SearchFields accepted by Search, matched case-insensitively.
var searchFields = map[string]bool{"title": true, "author": true, "isbn": true}

// Search filters the title-sorted catalog listing. A blank term returns
// the entire catalog regardless of field; an unknown field returns no
// results rather than an error. ISBN matches are exact and case-sensitive;
// title and author are case-insensitive substring matches.
func (c *Catalog) Search(ctx context.Context, term, field string) ([]entity.Book, error) {
	field = strings.ToLower(field)
	if !searchFields[field] {
		return []entity.Book{}, nil
	}

	all, err := c.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return all, nil
	}

	lowered := strings.ToLower(trimmed)
	results := make([]entity.Book, 0, len(all))
	for _, b := range all {
		switch field {
		case "isbn":
			if b.ISBN == trimmed {
				results = append(results, b)
			}
		case "title":
			if strings.Contains(strings.ToLower(b.Title), lowered) {
				results = append(results, b)
			}
		case "author":
			if strings.Contains(strings.ToLower(b.Author), lowered) {
				results = append(results, b)
			}
		}
	}
	return results, nil
}
