// Package demo is a three-screen sample app for the navigation stack: red
// pushes green, green pushes blue, and each screen remembers which of its
// radio options was checked across navigation and restarts.
package demo
