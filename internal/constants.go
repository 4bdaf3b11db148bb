/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent         = "chessclub-swiss/0.4.0 (+https://github.com/mikeb26/chessclub-swiss)"
	DefaultListenAddr = ":8080"
	DefaultDBDriver   = "sqlite3"
	DefaultDBDSN      = "swiss.db"
	DefaultByePoints  = 1.0
)
