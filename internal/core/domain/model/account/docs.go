// Package account contains the Seller and DeliveryPartner aggregates and
// their shared Credentials value object.
//
// Both account kinds register with an email and password, verify the email
// through a signed link, and log in to obtain an access token. Sellers submit
// and manage shipments; delivery partners declare serviceable postal areas
// and a concurrent shipment capacity that the dispatcher checks at
// assignment time.
package account
