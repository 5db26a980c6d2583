// Package hittest provides a 2D screen-space scene index for pointer
// picking. Scene objects register as tagged rectangles in a spatial hash;
// Pick answers which object, if any, sits under a screen position,
// preferring the shallowest depth. The picker satisfies the manager's
// hit-test collaborator interface.
package hittest
