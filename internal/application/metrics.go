package application

import "expvar"

// Counters published under /api/debug/vars.
var (
	usersRegistered = expvar.NewInt("users_registered")
	circlesCreated  = expvar.NewInt("circles_created")
	circleJoins     = expvar.NewInt("circle_joins")
	scoresSubmitted = expvar.NewInt("scores_submitted")
)
