/*
Package errors implements custom error interfaces for the marketplace.

The package is based on root error instances that are registered with a
unique code. Any error returned at runtime must wrap one of the root errors.
This allows matching with the Is method regardless of how many times an error
was wrapped on its way up, while the message accumulates context with every
wrap.

Extensions may register their own root errors with codes above 1000.
*/
package errors
