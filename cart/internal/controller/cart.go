package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/shoppingcart/cart/internal/common/otel"
	"github.com/Alturino/shoppingcart/cart/internal/service"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	"github.com/Alturino/shoppingcart/internal/auth"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
	inHttp "github.com/Alturino/shoppingcart/internal/http"
	"github.com/Alturino/shoppingcart/internal/log"
	"github.com/Alturino/shoppingcart/internal/middleware"
	inOtel "github.com/Alturino/shoppingcart/internal/otel"
)

type CartController struct {
	service  *service.CartService
	validate *validator.Validate
}

func AttachCartController(mux *mux.Router, service *service.CartService, secretKey string) {
	controller := CartController{
		service:  service,
		validate: request.NewValidator(),
	}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.Handle("/migrate", middleware.Auth(secretKey)(http.HandlerFunc(controller.MigrateCart))).
		Methods(http.MethodPost)
	router.HandleFunc("/{cartItemId}", controller.UpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/{cartItemId}", controller.RemoveCartItem).Methods(http.MethodDelete)
}

func writeError(
	w http.ResponseWriter,
	r *http.Request,
	span trace.Span,
	logger zerolog.Logger,
	err error,
) {
	inOtel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	inHttp.WriteErrorResponse(logger.WithContext(r.Context()), w, inErrors.StatusCode(err), err)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Any(log.KeyQueryValues, query).
		Str(log.KeyProcess, "finding cart").
		Logger()

	reqQuery := request.FindCart{
		PhoneCustomer: strings.TrimSpace(query.Get("phoneCustomer")),
		SessionID:     strings.TrimSpace(query.Get("sessionId")),
	}
	if err := t.validate.StructCtx(c, reqQuery); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed validating request with error=%w", err))
		return
	}

	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.ListCart(c, reqQuery)
	if err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed finding cart with error=%w", err))
		return
	}
	logger.Info().Int(log.KeyCartItemsCount, len(cart)).Msg("found cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf(
			"failed decoding request body with error=%w",
			fmt.Errorf("%w: %w", inErrors.ErrInvalidArgument, err),
		)
		writeError(w, r, span, logger, err)
		return
	}
	reqBody.PhoneCustomer = strings.TrimSpace(reqBody.PhoneCustomer)
	reqBody.SessionID = strings.TrimSpace(reqBody.SessionID)
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed validating request body with error=%w", err))
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	cartItem, err := t.service.AddCartItem(c, reqBody)
	if err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed adding cart item with error=%w", err))
		return
	}
	logger.Info().Str(log.KeyCartItemID, cartItem.ID.String()).Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully added cart item",
		"data": map[string]interface{}{
			"cartItem": cartItem,
		},
	})
}

func (t CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartItem")
	defer span.End()

	pathValues := mux.Vars(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartItem").
		Any(log.KeyPathValues, pathValues).
		Str(log.KeyProcess, "validating uuid").
		Logger()

	logger.Info().Msg("validating uuid")
	cartItemId, err := uuid.Parse(pathValues["cartItemId"])
	if err != nil {
		err = fmt.Errorf(
			"failed validating cartItemId=%s with error=%w",
			pathValues["cartItemId"],
			fmt.Errorf("%w: %w", inErrors.ErrInvalidArgument, err),
		)
		writeError(w, r, span, logger, err)
		return
	}
	logger.Info().Msg("validated uuid")

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.UpdateCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf(
			"failed decoding request body with error=%w",
			fmt.Errorf("%w: %w", inErrors.ErrInvalidArgument, err),
		)
		writeError(w, r, span, logger, err)
		return
	}
	reqBody.ID = cartItemId
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed validating request body with error=%w", err))
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msg("updating cart item")
	c = logger.WithContext(c)
	cartItem, err := t.service.UpdateCartItem(c, reqBody)
	if err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed updating cart item with error=%w", err))
		return
	}
	logger.Info().Msg("updated cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated cart item",
		"data": map[string]interface{}{
			"cartItem": cartItem,
		},
	})
}

func (t CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	pathValues := mux.Vars(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Any(log.KeyPathValues, pathValues).
		Str(log.KeyProcess, "validating uuid").
		Logger()

	logger.Info().Msg("validating uuid")
	cartItemId, err := uuid.Parse(pathValues["cartItemId"])
	if err != nil {
		err = fmt.Errorf(
			"failed validating cartItemId=%s with error=%w",
			pathValues["cartItemId"],
			fmt.Errorf("%w: %w", inErrors.ErrInvalidArgument, err),
		)
		writeError(w, r, span, logger, err)
		return
	}
	logger.Info().Msg("validated uuid")

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	if err = t.service.RemoveCartItem(c, cartItemId); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed removing cart item with error=%w", err))
		return
	}
	logger.Info().Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "Deleted",
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Any(log.KeyQueryValues, query).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	reqQuery := request.ClearCart{
		PhoneCustomer: strings.TrimSpace(query.Get("phoneCustomer")),
		SessionID:     strings.TrimSpace(query.Get("sessionId")),
	}
	if err := t.validate.StructCtx(c, reqQuery); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed validating request with error=%w", err))
		return
	}

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	owner, deleted, err := t.service.ClearCart(c, reqQuery)
	if err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed clearing cart with error=%w", err))
		return
	}
	logger.Info().Int64(log.KeyCartItemsCount, deleted).Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("Cart cleared (%s)", owner.Kind()),
	})
}

func (t CartController) MigrateCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController MigrateCart")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController MigrateCart").
		Any(log.KeyQueryValues, query).
		Str(log.KeyProcess, "validating request").
		Logger()

	logger.Info().Msg("validating request")
	reqQuery := request.MigrateCart{
		SessionID:     strings.TrimSpace(query.Get("sessionId")),
		PhoneCustomer: strings.TrimSpace(query.Get("phoneCustomer")),
	}
	if err := t.validate.StructCtx(c, reqQuery); err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed validating request with error=%w", err))
		return
	}
	logger.Info().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "getting subject from jwtToken").Logger()
	logger.Info().Msg("getting subject from jwtToken")
	subject, err := auth.SubjectFromContext(c)
	if err != nil {
		writeError(
			w,
			r,
			span,
			logger,
			fmt.Errorf("failed getting subject from jwtToken with error=%w", err),
		)
		return
	}
	if strings.TrimSpace(subject) != reqQuery.PhoneCustomer {
		err = fmt.Errorf(
			"failed authorizing phoneCustomer=%s with error=%w",
			reqQuery.PhoneCustomer,
			inErrors.ErrForbidden,
		)
		writeError(w, r, span, logger, err)
		return
	}
	logger.Info().Msg("got subject from jwtToken")

	logger = logger.With().Str(log.KeyProcess, "migrating cart").Logger()
	logger.Info().Msg("migrating cart")
	c = logger.WithContext(c)
	migration, err := t.service.MigrateCart(c, reqQuery)
	if err != nil {
		writeError(w, r, span, logger, fmt.Errorf("failed migrating cart with error=%w", err))
		return
	}
	logger.Info().Any(log.KeyMigrationResult, migration).Msg("migrated cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "Cart migrated",
		"data": map[string]interface{}{
			"migration": migration,
		},
	})
}
