package http

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"portfolio-studio/internal/adapter/repository"
	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/model"
	"portfolio-studio/internal/usecase"
	"portfolio-studio/pkg/ai"
	"portfolio-studio/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler exposes the dashboard engine to the presentation layer. One session
// is active at a time; starting a new one discards the previous document and
// transcript, which is the only way to clear them.
type Handler struct {
	mu        sync.Mutex
	session   *domain.Session
	doc       *usecase.Document
	workflow  *usecase.Generator
	assistant *usecase.Assistant

	backend  ai.Generator
	repo     *repository.SessionsRepo
	exporter *usecase.Exporter
	pool     poolHolder
	log      *logger.Logger
}

// poolHolder defers dataset loading so the handler does not depend on pgx
// directly.
type poolHolder func(ctx context.Context, email string) domain.Datasets

func NewHandler(backend ai.Generator, repo *repository.SessionsRepo, exporter *usecase.Exporter, datasets poolHolder, log *logger.Logger) *Handler {
	if datasets == nil {
		datasets = func(context.Context, string) domain.Datasets { return repository.DefaultDatasets() }
	}
	return &Handler{backend: backend, repo: repo, exporter: exporter, pool: datasets, log: log}
}

// NewApp constructs the fiber app the handler mounts on. The body limit sits
// above the image ingest ceiling (plus multipart overhead) so oversized
// uploads are rejected by the ingest policy, not by the transport.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit: usecase.MaxImageBytes + 1<<20,
	})
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/session", h.StartSession)
	app.Get("/session", h.GetSession)

	app.Get("/blocks", h.ListBlocks)
	app.Post("/blocks", h.AddBlock)
	app.Patch("/blocks/:id", h.UpdateBlock)
	app.Delete("/blocks/:id", h.RemoveBlock)
	app.Patch("/blocks/:id/style", h.UpdateStyle)
	app.Post("/blocks/:id/select", h.SelectBlock)
	app.Post("/blocks/:id/move", h.MoveBlock)
	app.Post("/blocks/:id/array", h.SetArrayField)
	app.Post("/blocks/:id/array/append", h.AppendArrayField)
	app.Post("/blocks/:id/image", h.UploadImage)

	app.Post("/generate", h.StartGeneration)
	app.Get("/generate/last", h.LastGeneration)

	app.Post("/chat", h.Chat)
	app.Get("/chat", h.Transcript)

	app.Get("/search", h.Search)

	app.Post("/publish", h.Publish)
	app.Post("/save", h.Save)
	app.Post("/export", h.Export)
}

type startSessionReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	var req startSessionReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user := domain.User{Name: req.Name, Email: req.Email, Role: req.Role}
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New(),
		User:      user,
		Datasets:  h.pool(c.Context(), req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	h.mu.Lock()
	h.session = session
	h.doc = usecase.NewDocument(user)
	h.workflow = usecase.NewGenerator(h.backend, h.log)
	h.assistant = usecase.NewAssistant(h.log)
	h.mu.Unlock()

	h.log.Info("session started", "session_id", session.ID.String(), "user", user.Name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": session.ID.String(),
		"title":     h.doc.Title(),
	})
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"session": s, "datasets": s.Datasets})
}

type addBlockReq struct {
	Kind string `json:"kind"`
}

func (h *Handler) AddBlock(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	var req addBlockReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	b, err := doc.AddBlock(model.BlockKind(req.Kind))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *Handler) ListBlocks(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	resp := fiber.Map{"title": doc.Title(), "blocks": doc.Blocks()}
	if sel, ok := doc.Selected(); ok {
		resp["selected"] = sel.ID.String()
	}
	return c.JSON(resp)
}

func (h *Handler) UpdateBlock(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	var partial map[string]interface{}
	if err := c.BodyParser(&partial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc.UpdateBlock(id, partial)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) RemoveBlock(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	doc.RemoveBlock(id)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) UpdateStyle(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	var style map[string]interface{}
	if err := c.BodyParser(&style); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc.UpdateStyle(id, style)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) SelectBlock(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	doc.Select(id)
	return c.JSON(fiber.Map{"status": "ok"})
}

type moveBlockReq struct {
	Direction int `json:"direction"`
}

func (h *Handler) MoveBlock(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	var req moveBlockReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc.MoveBlock(id, req.Direction)
	return c.JSON(fiber.Map{"status": "ok"})
}

type setArrayReq struct {
	Field string `json:"field"`
	Index int    `json:"index"`
	Value string `json:"value"`
}

func (h *Handler) SetArrayField(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	var req setArrayReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc.SetArrayField(id, req.Field, req.Index, req.Value)
	return c.JSON(fiber.Map{"status": "ok"})
}

type appendArrayReq struct {
	Field string `json:"field"`
}

func (h *Handler) AppendArrayField(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}
	var req appendArrayReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc.AppendArrayField(id, req.Field)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) UploadImage(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid block id"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing image file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable image file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable image file"})
	}

	img, err := usecase.IngestImage(doc, id, c.FormValue("field"), fh.Header.Get("Content-Type"), data)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"mime": img.MIME, "size": img.Size})
}

type generateReq struct {
	Kind string `json:"kind"`
}

// StartGeneration kicks off one generation request in the background and
// returns immediately; the outcome lands on /generate/last. A request issued
// while one is running is rejected, not queued.
func (h *Handler) StartGeneration(c *fiber.Ctx) error {
	_, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	h.mu.Lock()
	workflow := h.workflow
	h.mu.Unlock()

	// claim the latch before returning so a concurrent request gets a
	// deterministic 409 instead of a 202 that quietly resolves to nothing
	if err := workflow.TryStart(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	kind := ai.Kind(req.Kind)
	state := h.liveState()
	go func() {
		if _, err := workflow.Run(context.Background(), kind, state); err != nil {
			h.log.Warn("background generation resolved with error", "kind", req.Kind, "error", err)
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"kind": req.Kind, "status": string(usecase.StatusRunning)})
}

func (h *Handler) LastGeneration(c *fiber.Ctx) error {
	_, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	h.mu.Lock()
	workflow := h.workflow
	h.mu.Unlock()
	return c.JSON(fiber.Map{"status": string(workflow.Status()), "last": workflow.Last()})
}

type chatReq struct {
	Text string `json:"text"`
}

func (h *Handler) Chat(c *fiber.Ctx) error {
	_, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	var req chatReq
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	h.mu.Lock()
	assistant := h.assistant
	h.mu.Unlock()

	reply, err := assistant.Respond(c.Context(), req.Text, h.liveState())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"reply": reply})
}

func (h *Handler) Transcript(c *fiber.Ctx) error {
	_, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	h.mu.Lock()
	assistant := h.assistant
	h.mu.Unlock()
	return c.JSON(fiber.Map{"messages": assistant.Messages()})
}

func (h *Handler) Search(c *fiber.Ctx) error {
	s, _, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(usecase.FilterDatasets(c.Query("q"), s.Datasets))
}

func (h *Handler) Publish(c *fiber.Ctx) error {
	_, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	if err := doc.Publish(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "published"})
}

// Save snapshots the session best-effort; the document itself is untouched.
func (h *Handler) Save(c *fiber.Ctx) error {
	s, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	doc.Save()

	h.mu.Lock()
	assistant := h.assistant
	h.mu.Unlock()

	if h.repo != nil {
		if err := h.repo.Save(c.Context(), s, doc.Blocks(), assistant.Messages()); err != nil {
			h.log.Warn("session snapshot failed", "error", err)
		}
	}
	return c.JSON(fiber.Map{"status": "saved"})
}

func (h *Handler) Export(c *fiber.Ctx) error {
	s, doc, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	if h.exporter == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "export not configured"})
	}
	res, err := h.exporter.Export(c.Context(), s, doc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

var errNoSession = errors.New("no active session")

func (h *Handler) current() (*domain.Session, *usecase.Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return nil, nil, errNoSession
	}
	return h.session, h.doc, nil
}

func (h *Handler) liveState() ai.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := ai.State{}
	if h.session != nil {
		state.User = h.session.User
		state.Data = h.session.Datasets
	}
	if h.doc != nil {
		state.BlockCount = h.doc.Len()
	}
	return state
}

// fail maps engine errors to HTTP statuses.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errNoSession):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrUnknownKind):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrImageTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnsupportedImageType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrGenerationInFlight), errors.Is(err, usecase.ErrAssistantBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}
