package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/internal/service"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
)

var bookMessages = messages{
	notFound:  "Book not found",
	forbidden: "Not authorized to modify this book",
}

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseBookFilter(c echo.Context) (repo.BookFilter, error) {
	var f repo.BookFilter
	if v := c.QueryParam("category"); v != "" {
		cat, err := models.ParseCategory(v)
		if err != nil {
			return f, err
		}
		f.Category = &cat
	}
	if v := c.QueryParam("condition"); v != "" {
		cond, err := models.ParseCondition(v)
		if err != nil {
			return f, err
		}
		f.Condition = &cond
	}
	if v := c.QueryParam("format"); v != "" {
		format, err := models.ParseFormat(v)
		if err != nil {
			return f, err
		}
		f.Format = &format
	}
	for key, dst := range map[string]**float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		v := c.QueryParam(key)
		if v == "" {
			continue
		}
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return f, fmt.Errorf("%s must be a finite number", key)
		}
		*dst = &p
	}
	if v := c.QueryParam("sellerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, err
		}
		seller := uint(id)
		f.SellerID = &seller
	}
	f.Search = c.QueryParam("search")
	return f, nil
}

func (h *CatalogHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_books")

	f, err := parseBookFilter(c)
	if err != nil {
		l.Warn("list_books_error", "status", 400, "reason", "invalid filter", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filter: "+err.Error())
	}

	books, err := h.Svc.ListBooks(ctx, f)
	if err != nil {
		return fail(l, "list_books", err, bookMessages)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *CatalogHTTP) MyBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.my_books")

	userID, err := currentUser(c, l, "my_books")
	if err != nil {
		return err
	}
	books, err := h.Svc.ListBooks(ctx, repo.BookFilter{SellerID: &userID})
	if err != nil {
		return fail(l, "my_books", err, bookMessages)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *CatalogHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_book")

	id, err := pathID(c, l, "get_book")
	if err != nil {
		return err
	}
	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		return fail(l, "get_book", err, bookMessages)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *CatalogHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_book")

	userID, err := currentUser(c, l, "create_book")
	if err != nil {
		return err
	}
	var req transport.CreateBookRequest
	if err := bind(c, l, "create_book", &req); err != nil {
		return err
	}

	book, err := h.Svc.CreateBook(ctx, userID, req)
	if err != nil {
		return fail(l, "create_book", err, bookMessages)
	}

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusCreated, book)
}

func (h *CatalogHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_book")

	userID, err := currentUser(c, l, "update_book")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "update_book")
	if err != nil {
		return err
	}
	var req transport.PatchBookRequest
	if err := bind(c, l, "update_book", &req); err != nil {
		return err
	}

	book, err := h.Svc.UpdateBook(ctx, userID, id, req)
	if err != nil {
		return fail(l, "update_book", err, bookMessages)
	}

	l.Info("update_book_success", "book_id", id)
	return c.JSON(http.StatusOK, book)
}

func (h *CatalogHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_book")

	userID, err := currentUser(c, l, "delete_book")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "delete_book")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteBook(ctx, userID, id); err != nil {
		return fail(l, "delete_book", err, messages{notFound: "Book not found", forbidden: "Not authorized to delete this book"})
	}

	l.Info("delete_book_success", "book_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) Attributes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Attributes())
}
