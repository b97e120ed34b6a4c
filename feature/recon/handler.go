package recon

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"recon-engine/core/engine"
	apperrors "recon-engine/core/errors"
	"recon-engine/core/logger"
)

// Handler handles HTTP requests for rules and reconciliation sets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	rules := app.Group("/rules")
	rules.Post("/", h.HandleAddRule)
	rules.Get("/", h.HandleListRules)
	rules.Get("/:id", h.HandleGetRule)
	rules.Get("/:id/sets", h.HandleListSets)
	rules.Post("/:id/sets", h.HandleCreateSet)
	rules.Post("/:id/sets/generate", h.HandleGenerateSets)

	sets := app.Group("/sets")
	sets.Get("/:id", h.HandleGetSet)
	sets.Put("/:id/groups/:groupId/documents", h.HandleSetDocuments)
	sets.Post("/:id/variation", h.HandleSelectVariation)
	sets.Post("/:id/status", h.HandleTransitionStatus)
	sets.Post("/:id/comparisons/:comparisonLogicId", h.HandleEvaluateComparison)
}

// createSetRequest is the body of POST /rules/:id/sets.
type createSetRequest struct {
	MatchingLogicID string `json:"matchingLogicId"`
	AnchorDocID     string `json:"anchorDocId"`
}

// generateSetsRequest is the body of POST /rules/:id/sets/generate.
type generateSetsRequest struct {
	MatchingLogicID string `json:"matchingLogicId"`
}

// setDocumentsRequest is the body of PUT /sets/:id/groups/:groupId/documents.
type setDocumentsRequest struct {
	DocumentIDs []string `json:"documentIds"`
}

// selectVariationRequest is the body of POST /sets/:id/variation.
type selectVariationRequest struct {
	FromGroupID    string `json:"fromGroupId"`
	ToGroupID      string `json:"toGroupId"`
	VariationIndex int    `json:"variationIndex"`
}

// transitionStatusRequest is the body of POST /sets/:id/status.
type transitionStatusRequest struct {
	Status engine.Status `json:"status"`
}

// HandleAddRule registers a new rule.
// @Summary Register Rule
// @Description Validates and registers a reconciliation rule. A rule without an id gets one assigned.
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body engine.Rule true "Rule definition"
// @Success 201 {object} engine.Rule
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 404 {object} map[string]string "Referenced queue not found"
// @Router /rules [post]
func (h *Handler) HandleAddRule(c *fiber.Ctx) error {
	var rule engine.Rule
	if err := c.BodyParser(&rule); err != nil {
		return badRequest(c, "invalid rule payload: "+err.Error())
	}

	registered, err := h.service.AddRule(c.Context(), &rule)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(registered)
}

// HandleListRules lists registered rules.
// @Summary List Rules
// @Tags rules
// @Produce json
// @Success 200 {array} engine.Rule
// @Router /rules [get]
func (h *Handler) HandleListRules(c *fiber.Ctx) error {
	return c.JSON(h.service.ListRules())
}

// HandleGetRule returns one rule.
// @Summary Get Rule
// @Tags rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} engine.Rule
// @Failure 404 {object} map[string]string "Rule not found"
// @Router /rules/{id} [get]
func (h *Handler) HandleGetRule(c *fiber.Ctx) error {
	rule, err := h.service.GetRule(c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(rule)
}

// HandleListSets lists a rule's sets in creation order.
// @Summary List Sets
// @Tags sets
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {array} engine.ReconSet
// @Failure 404 {object} map[string]string "Rule not found"
// @Router /rules/{id}/sets [get]
func (h *Handler) HandleListSets(c *fiber.Ctx) error {
	sets, err := h.service.ListSets(c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(sets)
}

// HandleCreateSet builds one set from an anchor document.
// @Summary Create Set
// @Description Expands the anchor document into a reconciliation set under the given matching logic.
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param request body createSetRequest true "Anchor selection"
// @Success 201 {object} engine.ReconSet
// @Failure 404 {object} map[string]string "Rule, logic, or anchor document not found"
// @Router /rules/{id}/sets [post]
func (h *Handler) HandleCreateSet(c *fiber.Ctx) error {
	var req createSetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload: "+err.Error())
	}

	set, err := h.service.CreateSet(c.Context(), c.Params("id"), req.MatchingLogicID, req.AnchorDocID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(set)
}

// HandleGenerateSets builds one set per anchor-group queue member.
// @Summary Generate Sets
// @Description Builds one reconciliation set for every document currently in the anchor group's queues.
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param request body generateSetsRequest true "Matching logic selection"
// @Success 201 {array} engine.ReconSet
// @Failure 404 {object} map[string]string "Rule or logic not found"
// @Router /rules/{id}/sets/generate [post]
func (h *Handler) HandleGenerateSets(c *fiber.Ctx) error {
	var req generateSetsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload: "+err.Error())
	}

	l := logger.WithRayID(h.service.logger, c)
	sets, err := h.service.GenerateSets(c.Context(), c.Params("id"), req.MatchingLogicID)
	if err != nil {
		return h.respondError(c, err)
	}

	l.Info("Sets generated", zap.String("rule_id", c.Params("id")), zap.Int("count", len(sets)))
	return c.Status(fiber.StatusCreated).JSON(sets)
}

// HandleGetSet returns one set.
// @Summary Get Set
// @Tags sets
// @Produce json
// @Param id path string true "Set ID"
// @Success 200 {object} engine.ReconSet
// @Failure 404 {object} map[string]string "Set not found"
// @Router /sets/{id} [get]
func (h *Handler) HandleGetSet(c *fiber.Ctx) error {
	set, err := h.service.GetSet(c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(set)
}

// HandleSetDocuments replaces one group's membership by hand.
// @Summary Override Group Documents
// @Description Replaces the group's membership, bypassing matching. The override survives upstream recomputation.
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param groupId path string true "Group ID"
// @Param request body setDocumentsRequest true "New membership"
// @Success 200 {object} engine.ReconSet
// @Failure 404 {object} map[string]string "Set or group not found"
// @Router /sets/{id}/groups/{groupId}/documents [put]
func (h *Handler) HandleSetDocuments(c *fiber.Ctx) error {
	var req setDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload: "+err.Error())
	}

	set, err := h.service.SetDocumentsForGroup(c.Params("id"), c.Params("groupId"), req.DocumentIDs)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(set)
}

// HandleSelectVariation switches a link's criteria variation.
// @Summary Select Criteria Variation
// @Description Switches one link to another criteria variation and recomputes the downstream sub-graph.
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param request body selectVariationRequest true "Link and variation"
// @Success 200 {object} engine.ReconSet
// @Failure 400 {object} map[string]string "Variation index out of range"
// @Failure 404 {object} map[string]string "Set or link not found"
// @Router /sets/{id}/variation [post]
func (h *Handler) HandleSelectVariation(c *fiber.Ctx) error {
	var req selectVariationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload: "+err.Error())
	}

	key := engine.LinkKey{FromGroupID: req.FromGroupID, ToGroupID: req.ToGroupID}
	set, err := h.service.SelectVariation(c.Context(), c.Params("id"), key, req.VariationIndex)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(set)
}

// HandleTransitionStatus moves a set to a terminal verdict.
// @Summary Transition Set Status
// @Description Moves a pending set to rejected or force_reconciled. Terminal sets do not move again.
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param request body transitionStatusRequest true "Target status"
// @Success 200 {object} engine.ReconSet
// @Failure 404 {object} map[string]string "Set not found"
// @Failure 409 {object} map[string]string "Transition not permitted"
// @Router /sets/{id}/status [post]
func (h *Handler) HandleTransitionStatus(c *fiber.Ctx) error {
	var req transitionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload: "+err.Error())
	}

	set, err := h.service.TransitionStatus(c.Params("id"), req.Status)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(set)
}

// HandleEvaluateComparison runs one comparison logic against a set.
// @Summary Evaluate Comparison
// @Description Runs the comparison logic against the set's current membership and stores the result on the set.
// @Tags sets
// @Produce json
// @Param id path string true "Set ID"
// @Param comparisonLogicId path string true "Comparison Logic ID"
// @Success 200 {object} engine.ComparisonResult
// @Failure 404 {object} map[string]string "Set or comparison logic not found"
// @Router /sets/{id}/comparisons/{comparisonLogicId} [post]
func (h *Handler) HandleEvaluateComparison(c *fiber.Ctx) error {
	result, err := h.service.EvaluateComparison(c.Context(), c.Params("id"), c.Params("comparisonLogicId"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}

// respondError maps the typed engine errors onto HTTP statuses.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidVariationIndex),
		errors.Is(err, apperrors.ErrMalformedFieldPath),
		errors.Is(err, apperrors.ErrRuleInconsistency):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
