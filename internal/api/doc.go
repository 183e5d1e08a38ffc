// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the character and user services:
// handlers decode and validate input, call one service operation and
// translate the result or error into the JSON envelope.
package api
