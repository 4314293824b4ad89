/*
Package market implements the marketplace state machine: fixed price
listings and bilateral swap offers over unique tokens.

Listing a token moves it into the custody of the marketplace escrow address
until it is bought or delisted. A listing record is never deleted, only its
Listed flag is cleared, so the same token can be listed again later.

A swap offer is keyed by the requested token, which means at most one open
offer can target any given token. Proposing a second swap against the same
requested token silently replaces the first offer without notifying the
original offerer. Offers have no expiry and the offered token is not
escrowed; ownership of both sides is verified at acceptance time and the
whole acceptance fails if either transfer cannot be performed.

Payments are strict: the attached payment must equal the required amount
exactly, overpayment is rejected rather than refunded.

The listing fee and the administrative account allowed to change it are kept
in the package configuration, see gconf.
*/
package market
