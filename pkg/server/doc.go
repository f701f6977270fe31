// Package server implements the sunburst HTTP viewer.
//
// A [Server] holds one loaded dataset and renders it on request through a
// [pipeline.Runner], so repeated views of the same focus come from the
// cache. Zoom is link based: every clickable arc links to ?focus=N and the
// center disc links back to the parent focus.
//
// # Endpoints
//
//	GET /                 viewer page (chart and route selector)
//	GET /chart.svg        SVG for ?focus=N or ?path=a/b
//	GET /chart.png        PNG for the same query, plus ?scale=S
//	GET /layout.json      chart document
//	GET /healthz          dataset status
//	GET /assets/*         route images
//
// # Reload
//
// [Server.Watch] reloads the dataset when its file changes. The new tree is
// swapped in atomically; requests in flight finish with the tree they
// started with. A file that fails to load leaves the previous dataset in
// place.
package server
