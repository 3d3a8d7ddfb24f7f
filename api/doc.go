// Package api provides the HTTP API layer for the Yomu News reader.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type HeadlinesInput struct {
//	    Source string `query:"source"`
//	    Limit  int    `query:"limit" minimum:"0" maximum:"100"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling
//
// # Usage Example
//
//	// Create API with middleware
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//	
//	// Register handlers
//	articleHandler := handlers.NewArticleHandler(extractionService)
//	articleHandler.RegisterRoutes(humaAPI)
//	
//	// Start server
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Handlers answer errors with a small JSON body:
//
//	{
//	    "error": "Failed to fetch from article source",
//	    "details": "fetch article: external API error from article source: 503 - Service Unavailable"
//	}
//
// Validation and unsupported-source errors map to 400, missing sources to 404,
// synthesis failures to 502 and everything else to 500.
package api