// Package search matches a query against registered apps and portfolio
// content.
//
// Matching is a case-insensitive substring test: apps on name, keywords and
// description; projects on title and description; skills on label. Results
// come back apps first, then projects, then skills, each in catalog order,
// and are cut at Limit. Every result carries an open_app action naming the
// app that shows it.
//
// A blank query returns no results. Outcome tells the caller whether an
// empty list means "nothing typed" or "nothing matched", since both share
// the same return shape.
package search
