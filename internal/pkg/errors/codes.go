package errors

import "net/http"

var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Discovery session not found",
		http.StatusNotFound,
	)

	ErrPropertyNotFound = New(
		"PROPERTY_NOT_FOUND",
		"Property not found",
		http.StatusNotFound,
	)

	ErrAreaNotFound = New(
		"AREA_NOT_FOUND",
		"Advertising area not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrUnlocatableProperty = New(
		"UNLOCATABLE_PROPERTY",
		"Property has no resolvable coordinate",
		http.StatusUnprocessableEntity,
	)

	ErrNoAreaSelection = New(
		"NO_AREA_SELECTION",
		"Area selection requires an active property drill-down",
		http.StatusConflict,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Invalid session identifier",
		http.StatusBadRequest,
	)

	ErrInvalidPropertyID = New(
		"INVALID_PROPERTY_ID",
		"Invalid property identifier",
		http.StatusBadRequest,
	)

	ErrInvalidAreaID = New(
		"INVALID_AREA_ID",
		"Invalid area identifier",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
