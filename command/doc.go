/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package command runs stored procedures and SQL text through a bun database
under a fixed output-parameter convention.

Every call carries two reserved output parameters, Message and
return_value. A procedure signals an application failure by setting
return_value to 1 and putting the user-facing reason in Message; the
executor turns that into an *Error and discards any rows. Driver errors
that name a constraint (f_, ck_ or u_ prefixes) are also surfaced as
*Error with the driver's text.

	e := command.NewExecutor(db)
	params := command.NewParams().Add("Id", 42)
	user, err := command.ExecuteGetSingle[User](ctx, e, "usp_GetUser", params)
	if appErr, ok := command.AsApplicationError(err); ok {
		// show appErr.Message
	}
*/
package command
