package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/open-meteo-tools/internal/store"
	"github.com/i474232898/open-meteo-tools/internal/tools"
)

var validate = validator.New()

// Catalog is everything the API exposes to agents.
type Catalog struct {
	Tools     *tools.Registry
	Resources *tools.Resources
	Prompts   *tools.Prompts
	// Watch is the alert watcher history. Nil leaves the watch routes out.
	Watch *store.MemoryStore
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, catalog Catalog) {
	v1 := app.Group("/api/v1")

	v1.Get("/tools", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tools": catalog.Tools.List()})
	})

	v1.Post("/tools/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")
		callID := uuid.NewString()

		result, err := catalog.Tools.Call(c.UserContext(), name, json.RawMessage(c.Body()))
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(fiber.Map{
			"tool":    name,
			"call_id": callID,
			"result":  result,
		})
	})

	v1.Get("/resources", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"resources": catalog.Resources.List()})
	})

	v1.Get("/resources/:name", func(c *fiber.Ctx) error {
		content, err := catalog.Resources.Read(c.Params("name"))
		if err != nil {
			return toHTTPError(err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(content)
	})

	v1.Get("/prompts", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"prompts": catalog.Prompts.List()})
	})

	v1.Post("/prompts/:name", func(c *fiber.Ctx) error {
		var args map[string]string
		if len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &args); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "prompt arguments must be a JSON object of strings")
			}
		}

		name := c.Params("name")
		text, err := catalog.Prompts.Render(name, args)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"prompt": name, "text": text})
	})

	if catalog.Watch == nil {
		return
	}

	v1.Get("/watch", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"locations": catalog.Watch.LatestAll()})
	})

	v1.Get("/watch/:location", func(c *fiber.Ctx) error {
		key, err := locationParam(c)
		if err != nil {
			return err
		}

		rec, err := catalog.Watch.Latest(key)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return err
		}
		return c.JSON(rec)
	})

	v1.Get("/watch/:location/history", func(c *fiber.Ctx) error {
		key, err := locationParam(c)
		if err != nil {
			return err
		}

		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := catalog.Watch.Range(key, req.From, req.To)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no watch results for requested range")
		}
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"location": key,
			"from":     req.From,
			"to":       req.To,
			"records":  records,
		})
	})
}

// locationParam returns the unescaped :location path segment, so names
// such as "St Moritz" or "Zürich" match their watch keys.
func locationParam(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("location"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid location in path")
	}
	return key, nil
}

// historyQuery holds query parameters for the watch history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

// toHTTPError maps tool and upstream errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, tools.ErrBadParameter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tools.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "upstream request timed out")
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
