/*
Package nft is the asset registry of the marketplace. It owns the mapping
from token identifier to current owner and to an immutable metadata pointer.
Identifiers are assigned from a monotonic sequence starting at 1; the latest
sequence value doubles as the total supply.

The registry is the ground truth for ownership. Other extensions never cache
an owner, they ask the registry at the moment of the decision.
*/
package nft
