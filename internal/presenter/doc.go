// Package presenter holds the screen state of the fund browser.
//
// Each screen is an immutable state value plus a pure reducer that folds
// events into a new state. The Home and Detail controllers feed service
// results into the reducers and publish every new state to a subscriber.
package presenter
