package wizard

import (
	"context"
	"fmt"
	"strings"

	"costwise/internal/logging"
	"costwise/internal/types"
)

// Gateway is the external API surface the wizard commits through. Calls may
// fail with transport or domain errors and are not retried here.
type Gateway interface {
	CreateRecipe(ctx context.Context, payload types.RecipePayload) (types.Entity, error)
	UpdateRecipe(ctx context.Context, id string, payload types.RecipePayload) (types.Entity, error)
	CreateMenuItem(ctx context.Context, payload types.MenuItemPayload) (types.Entity, error)
	UpdateMenuItem(ctx context.Context, id string, payload types.MenuItemPayload) (types.Entity, error)
}

// CacheInvalidator is told exactly once after a successful commit so
// dependent views can refresh.
type CacheInvalidator interface {
	OnEntityCommitted(kind types.EntityKind)
}

// Coordinator turns session fields into exactly one of the two outbound
// payload shapes and drives the gateway call.
type Coordinator struct {
	gateway Gateway
	cache   CacheInvalidator
	log     logging.Logger
}

func NewCoordinator(gateway Gateway, cache CacheInvalidator, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	return &Coordinator{gateway: gateway, cache: cache, log: log}
}

// Commit re-validates every required step, builds the payload for the
// discriminator, and calls the gateway. A validation failure returns without
// any network call. A gateway failure is wrapped as ErrCommitFailed and the
// caller's session stays open for retry; nothing was partially sent. Cache
// invalidation fires only on success, once.
func (c *Coordinator) Commit(ctx context.Context, fields SessionFields, d Discriminator, entityID string) (types.Entity, error) {
	if c == nil || c.gateway == nil {
		return types.Entity{}, ErrNoGateway
	}
	if stepErrs := ValidateAll(fields, d); stepErrs != nil {
		return types.Entity{}, stepErrs
	}

	entityID = strings.TrimSpace(entityID)
	var entity types.Entity
	var err error
	switch d {
	case DiscriminatorRecipe:
		payload := BuildRecipePayload(fields)
		if entityID == "" {
			entity, err = c.gateway.CreateRecipe(ctx, payload)
		} else {
			entity, err = c.gateway.UpdateRecipe(ctx, entityID, payload)
		}
	case DiscriminatorMenuItem:
		payload := BuildMenuItemPayload(fields)
		if entityID == "" {
			entity, err = c.gateway.CreateMenuItem(ctx, payload)
		} else {
			entity, err = c.gateway.UpdateMenuItem(ctx, entityID, payload)
		}
	default:
		return types.Entity{}, fmt.Errorf("%w: no creation type chosen", ErrValidationFailed)
	}
	if err != nil {
		c.log.Warn("commit failed",
			logging.F("kind", string(d)),
			logging.F("entity_id", entityID),
			logging.F("err", err))
		return types.Entity{}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	c.log.Info("entity committed",
		logging.F("kind", string(entity.Kind)),
		logging.F("entity_id", entity.ID))
	if c.cache != nil {
		c.cache.OnEntityCommitted(KindFor(d))
	}
	return entity, nil
}

// BuildRecipePayload projects the shared identity, ingredient and
// preparation sub-objects into a recipe request. Sales settings are never
// included.
func BuildRecipePayload(fields SessionFields) types.RecipePayload {
	return types.RecipePayload{
		Name:            strings.TrimSpace(fields.Basic.Name),
		Description:     strings.TrimSpace(fields.Basic.Description),
		Servings:        fields.Basic.Servings,
		PrepTimeMinutes: fields.Preparation.PrepTimeMinutes,
		CookTimeMinutes: fields.Preparation.CookTimeMinutes,
		Instructions:    strings.TrimSpace(fields.Preparation.Instructions),
		Ingredients:     payloadIngredients(fields.Ingredients),
	}
}

// BuildMenuItemPayload is the recipe projection plus the sales block.
func BuildMenuItemPayload(fields SessionFields) types.MenuItemPayload {
	return types.MenuItemPayload{
		Name:            strings.TrimSpace(fields.Basic.Name),
		Description:     strings.TrimSpace(fields.Basic.Description),
		Servings:        fields.Basic.Servings,
		PrepTimeMinutes: fields.Preparation.PrepTimeMinutes,
		CookTimeMinutes: fields.Preparation.CookTimeMinutes,
		Instructions:    strings.TrimSpace(fields.Preparation.Instructions),
		Ingredients:     payloadIngredients(fields.Ingredients),
		Category:        strings.TrimSpace(fields.Sales.Category),
		Price:           fields.Sales.Price,
		Margin:          fields.Sales.Margin,
		IsAvailable:     fields.Sales.IsAvailable,
	}
}

// KindFor maps a discriminator to the committed entity kind.
func KindFor(d Discriminator) types.EntityKind {
	if d == DiscriminatorMenuItem {
		return types.KindMenuItem
	}
	return types.KindRecipe
}

func payloadIngredients(lines []IngredientLine) []types.PayloadIngredient {
	out := make([]types.PayloadIngredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, types.PayloadIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         strings.TrimSpace(line.Unit),
		})
	}
	return out
}
