// Package domain contains the core business entities, value objects, and
// domain logic of the application: characters and their partial updates,
// users and the password policy, and the ordering rules used when sorting
// characters. It is independent of any specific infrastructure or delivery
// mechanism.
package domain
