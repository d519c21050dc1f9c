// Package handler serves a form over net/http.
//
// GET and HEAD render the standalone page hosting the form. POST accepts the
// answers as a JSON object, validates them on the server and replies with the
// validation result: 200 with {"valid":true} when every check passes, 422
// with the issues otherwise. Other methods get 405.
package handler
