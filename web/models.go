/* models.go
 * Contains the structs used by the web server
 * Authors: Zachary Bower
 */

package web

import (
	"pool-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that handles webhook and leaderboard requests
type Server struct {
	api *api.API
}
