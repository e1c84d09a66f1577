// Package model defines the LightBnB domain records shared by the
// repository and service layers.
package model
