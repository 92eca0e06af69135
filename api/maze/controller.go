package mazeapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amazeing/maze-api/api/identity"
	dmn "github.com/amazeing/maze-api/domain"
	"github.com/amazeing/maze-api/mazegen"
	"github.com/amazeing/maze-api/service"
	"github.com/amazeing/maze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultStepCount  = 1
	defaultSolveCount = 1
	maxSolveCount     = 16
)

// MazeController handles HTTP requests for maze sessions.
type MazeController struct {
	sessions i.MazeSessionManager
	mazes    i.MazeRepo
	logger   i.Logger
}

// NewMazeController creates a maze controller.
func NewMazeController(sessions i.MazeSessionManager, mazes i.MazeRepo, logger i.Logger) (*MazeController, error) {
	if sessions == nil || mazes == nil || logger == nil {
		return nil, errors.New("maze controller needs sessions, a maze repo, and a logger")
	}
	return &MazeController{sessions: sessions, mazes: mazes, logger: logger}, nil
}

// RegisterPublic registers public routes.
func (c *MazeController) RegisterPublic(route *gin.RouterGroup) {
}

// RegisterProtected registers privileged routes.
func (c *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", c.create)
		mazes.POST("/animated", c.createAnimated)
		mazes.GET("/:id", c.state)
		mazes.POST("/:id/step", c.step)
		mazes.POST("/:id/solve", c.solve)
		mazes.POST("/:id/save", c.save)
		mazes.DELETE("/:id", c.discard)
	}

	saved := route.Group("/saved-mazes")
	{
		saved.GET("", c.listSaved)
		saved.GET("/:id", c.savedByID)
	}
}

// generatorConfig validates a request into a generation config.
func (r *CreateMazeRequest) generatorConfig() (mazegen.Config, error) {
	entry, err := mazegen.ParsePosition(r.Entry)
	if err != nil {
		return mazegen.Config{}, err
	}
	exit, err := mazegen.ParsePosition(r.Exit)
	if err != nil {
		return mazegen.Config{}, err
	}
	algo, err := mazegen.ParseAlgorithm(r.Algo)
	if err != nil {
		return mazegen.Config{}, err
	}
	return mazegen.Config{
		Width:       r.Width,
		Height:      r.Height,
		Entry:       entry,
		Exit:        exit,
		Perfect:     r.Perfect == nil || *r.Perfect,
		Algorithm:   algo,
		Seed:        r.Seed,
		LoopDivisor: r.LoopDivisor,
	}, nil
}

func (c *MazeController) createSession(ctx *gin.Context, eager bool) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := request.generatorConfig()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.sessions.Create(ctx.Request.Context(), cfg, eager)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, stateResponse(state, ctx.Query("pretty") == "true"))
}

// create generates a maze eagerly.
func (c *MazeController) create(ctx *gin.Context) {
	c.createSession(ctx, true)
}

// createAnimated starts a session driven step by step via the step route.
func (c *MazeController) createAnimated(ctx *gin.Context) {
	c.createSession(ctx, false)
}

// state returns the current session snapshot.
func (c *MazeController) state(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	state, err := c.sessions.State(id)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(state, ctx.Query("pretty") == "true"))
}

// step advances an animated session by n steps (default one).
func (c *MazeController) step(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	n := defaultStepCount
	if raw := ctx.Query("n"); raw != "" {
		if n, err = strconv.Atoi(raw); err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
	}

	state, err := c.sessions.Step(id, n)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(state, ctx.Query("pretty") == "true"))
}

// solve runs the path solver on a finished session.
func (c *MazeController) solve(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	count := defaultSolveCount
	if raw := ctx.Query("count"); raw != "" {
		if count, err = strconv.Atoi(raw); err != nil || count < 1 || count > maxSolveCount {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 16"})
			return
		}
	}

	paths, err := c.sessions.Solve(id, count)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &SolveResponse{Paths: paths})
}

// save persists a finished session for the signed-in user.
func (c *MazeController) save(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	ownerID, err := claimedUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	state, err := c.sessions.State(id)
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	if !state.Done {
		ctx.JSON(http.StatusConflict, gin.H{"error": "maze generation is not finished"})
		return
	}

	solution := ""
	if paths := mazegen.NewSolver(state.Maze).Solve(1); len(paths) > 0 {
		solution = paths[0]
	}

	record, err := dmn.NewMazeRecord(uuid.New(), ownerID, state.Maze, solution)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.mazes.Save(record); err != nil {
		c.logger.Error("saving maze record: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not save maze"})
		return
	}

	ctx.JSON(http.StatusCreated, &SaveResponse{RecordID: record.ID.String()})
}

// discard drops a session.
func (c *MazeController) discard(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	if err := c.sessions.Discard(id); err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// listSaved returns the signed-in user's saved mazes, newest first.
func (c *MazeController) listSaved(ctx *gin.Context) {
	ownerID, err := claimedUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	records, err := c.mazes.ByOwner(ownerID)
	if err != nil {
		c.logger.Error("listing saved mazes: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list saved mazes"})
		return
	}

	responses := make([]*SavedMazeResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, savedResponse(record))
	}
	ctx.JSON(http.StatusOK, responses)
}

// savedByID returns one saved maze, owner only.
func (c *MazeController) savedByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	ownerID, err := claimedUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	record, err := c.mazes.ByID(id)
	if err != nil || record.OwnerID != ownerID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
		return
	}
	ctx.JSON(http.StatusOK, savedResponse(record))
}

func (c *MazeController) respondSessionError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// claimedUserID extracts the authenticated user's ID from the middleware
// claims.
func claimedUserID(ctx *gin.Context) (uuid.UUID, error) {
	raw, ok := ctx.Get(identity.ContextUserClaims)
	if !ok {
		return uuid.Nil, errors.New("no claims in context")
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("malformed claims")
	}
	idStr, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing userID claim")
	}
	return uuid.Parse(idStr)
}

func stateResponse(state *i.SessionState, pretty bool) *MazeResponse {
	response := &MazeResponse{
		ID:     state.ID.String(),
		Grid:   state.Maze.String(),
		Entry:  mazegen.FormatPosition(state.Maze.Entry),
		Exit:   mazegen.FormatPosition(state.Maze.Exit),
		Done:   state.Done,
		Cached: state.Cache,
	}
	if pretty {
		response.Pretty = state.Maze.PrettyString()
	}
	return response
}

func savedResponse(record *dmn.MazeRecord) *SavedMazeResponse {
	return &SavedMazeResponse{
		ID:        record.ID.String(),
		Width:     record.Width,
		Height:    record.Height,
		Grid:      record.Grid,
		Entry:     record.Entry,
		Exit:      record.Exit,
		Solution:  record.Solution,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
