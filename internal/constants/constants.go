package constants

// Centralized constants for env keys, routes and API messages.
const (
	// Environment variable keys
	EnvConfigPath = "BEASTBRAWL_CONFIG"
	EnvDBPath     = "BEASTBRAWL_DB"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteHealthz       = "/healthz"
	RouteTrainers      = "/trainers"
	RouteTrainerStats  = "/trainers/:name/stats"
	RouteLeaderboard   = "/leaderboard"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleAction  = "/battles/:battleID/action"
	RouteBattleWatch   = "/battles/:battleID/watch"
	RouteRecentBattles = "/battles/recent"
	RouteVersion       = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleAlreadyOver    = "Battle is already over"
	ErrNotYourTurn          = "Action rejected: wait for the other side"
	ErrUnknownTrainer       = "Unknown enemy trainer"
	ErrTrainerNotFound      = "Trainer not found"
	ErrUnknownAction        = "Unknown action type"
	ErrUnknownMove          = "Active creature does not know that move"
	ErrUnknownItem          = "Item not in inventory"
	ErrFailedFetchStats     = "Failed to fetch stats"
	ErrFailedFetchBoard     = "Failed to fetch leaderboard"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrTrainerNameRequired  = "trainer name is required"
	ErrFailedUpgradeSocket  = "Failed to upgrade connection"
	ErrFailedEncodeSnapshot = "Failed to encode battle"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldTrainer  = "trainer"
	LogFieldSide     = "side"
	LogFieldAddr     = "addr"
	LogFieldName     = "name"
)
