// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	hw "github.com/db47h/hwserial"
)

// ResetSteps is the number of steps PowerOn holds the reset line. It is long
// enough for registered outputs to reach their reset levels and for the
// synchronizers downstream to flush the initial all-low wire states.
//
const ResetSteps = 4

// PowerOn holds *rst high for ResetSteps steps then releases it.
//
func PowerOn(c *hw.Circuit, rst *bool) {
	*rst = true
	c.Run(ResetSteps)
	*rst = false
}
