// Package lib holds building blocks that do not belong to a single layer.
//
// admission paces calls against a fixed per-window quota, retry re-runs
// operations that failed transiently, and apifootball is the API-Football
// client built on both.
package lib
