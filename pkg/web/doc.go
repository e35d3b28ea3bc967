// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package web contains the HTTP request and client configuration of remote dataset sources.
HTTPConfig embeds both of them and is the structure meant to be part of a source configuration.
*/
package web
