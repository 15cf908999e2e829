// Package http implements the REST transport of the identity core.
//
// It exposes registration, login, the password reset flow, profile edits
// and the admin artifact purge. Request tracing, access logging with
// request metrics and bearer authentication are applied here before a
// request reaches the service layer.
package http
