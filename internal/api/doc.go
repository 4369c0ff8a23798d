// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package api provides the HTTP REST layer for MovieMate.

It exposes the catalog, the recommendation engine, metadata enrichment and
the movie-battle arena over JSON, with a consistent response envelope and a
typed error mapping.

Route map:

	GET  /health                                    liveness and catalog counters
	GET  /metrics                                   Prometheus exposition

	GET  /api/v1/movies                             paginated catalog listing
	GET  /api/v1/movies/search?q=                   title substring search
	GET  /api/v1/movies/random?count=               uniform random sample
	GET  /api/v1/movies/genre/{genre}               movies tagged with a genre
	GET  /api/v1/movies/{movieID}                   single movie, enriched best-effort
	GET  /api/v1/movies/{movieID}/streaming         mock provider availability
	GET  /api/v1/movies/{movieID}/trivia            multiple-choice trivia question
	GET  /api/v1/genres                             genre vocabulary with counts

	POST   /api/v1/ratings                          add or overwrite a rating
	GET    /api/v1/ratings/user/{userID}            all ratings by a user
	DELETE /api/v1/ratings/{userID}/{movieID}       remove one rating
	GET    /api/v1/users/{userID}/profile           rating activity and genre preferences

	GET  /api/v1/recommendations/content/{movieID}?k=
	GET  /api/v1/recommendations/collaborative/{userID}?k=
	GET  /api/v1/recommendations/hybrid?user_id=&movie_id=&k=&content_weight=

	GET  /api/v1/stats                              catalog, histogram and engine counters

	GET  /api/v1/onboarding/questionnaire           genre-bucketed sample movies
	POST /api/v1/onboarding/complete                liked genres to ranked picks
	GET  /api/v1/discover/questions                 mood / time / era questionnaire
	POST /api/v1/discover/answers                   mood and era to filtered picks

	GET  /api/v1/battles/pair                       start a battle between two random movies
	POST /api/v1/battles/vote                       vote in an open battle
	GET  /api/v1/battles/leaderboard?limit=         movies ranked by votes won

Every response is wrapped in APIResponse: {"success": true, "data": ...}
on success and {"success": false, "error": {"code", "message"}} on failure,
both carrying request metadata. Domain errors map to stable codes:

	catalog.ErrMovieNotFound, ErrUserNotFound,
	ErrRatingNotFound, arena.ErrBattleNotFound   404 NOT_FOUND
	recommend.ErrInvalidRequest, arena.ErrWrongMovie  400 BAD_REQUEST
	request body or parameter validation         400 VALIDATION_ERROR
	recommend.ErrInsufficientData                422 INSUFFICIENT_DATA
	anything unexpected                          500 INTERNAL_ERROR

The middleware stack is chi ecosystem throughout: RequestID and Prometheus
instrumentation from internal/middleware, go-chi/cors for CORS, and
go-chi/httprate for per-IP rate limiting with separate budgets for reads,
writes and health probes.

Handlers never block on external I/O except metadata enrichment, which is
best-effort: an unreachable provider degrades the affected response fields
and never fails the request.
*/
package api
